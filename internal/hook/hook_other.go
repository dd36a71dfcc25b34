//go:build !linux

package hook

// NewSystem returns the platform hook. Only Linux has one.
func NewSystem() (Hook, error) {
	return nil, ErrUnsupported
}
