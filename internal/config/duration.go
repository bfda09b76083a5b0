package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration written as a Go duration string ("10s",
// "1m30s") in both YAML and TOML files. Bare numbers are rejected rather
// than read as nanoseconds.
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}
