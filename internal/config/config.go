// Package config resolves the daemon's single tunable: the debounce
// threshold. The threshold can come from the positional argument, from an
// optional JSON file, or fall back to the default, in that order of
// precedence. An absent or zero value always means the default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultThresholdMS is the default debounce threshold in milliseconds.
const DefaultThresholdMS = 20

// Config is the effective daemon configuration.
type Config struct {
	// ThresholdMS is the debounce threshold in whole milliseconds.
	ThresholdMS uint64
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{ThresholdMS: DefaultThresholdMS}
}

// Threshold returns the threshold as a duration for the filter.
func (c Config) Threshold() time.Duration {
	return time.Duration(c.ThresholdMS) * time.Millisecond
}

// JSON renders the effective configuration as canonical JSON.
func (c Config) JSON() (string, error) {
	out, err := sjson.Set("", "threshold_ms", c.ThresholdMS)
	if err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	return out, nil
}

// Load reads a configuration file. Unknown fields are ignored; a zero or
// missing threshold_ms selects the default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Config{}, fmt.Errorf("config %s: not valid JSON", path)
	}

	cfg := Default()
	if v := gjson.GetBytes(data, "threshold_ms"); v.Exists() && v.Uint() > 0 {
		cfg.ThresholdMS = v.Uint()
	}
	return cfg, nil
}

// ParseThresholdArg parses the positional threshold argument. An empty
// string or "0" yields zero, meaning "not specified".
func ParseThresholdArg(arg string) (uint64, error) {
	if arg == "" {
		return 0, nil
	}
	ms, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("threshold %q: must be a whole number of milliseconds", arg)
	}
	return ms, nil
}

// Resolve combines the three configuration sources. arg is the raw
// positional argument ("" when absent); path is the config file ("" when not
// given). Precedence: argument, then file, then default.
func Resolve(arg, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	ms, err := ParseThresholdArg(arg)
	if err != nil {
		return Config{}, err
	}
	if ms > 0 {
		cfg.ThresholdMS = ms
	}

	return cfg, nil
}
