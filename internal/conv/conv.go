// Package conv implements the typed half of the match-store query
// interface: values are stored as raw bytes by the parser, and a caller
// that wants a bool/int/float/time.Time/etc. reads it through one of the
// functions here, using github.com/araddon/dateparse for locale-free,
// format-free timestamp parsing.
package conv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Bool parses a command-line boolean the way strconv.ParseBool does,
// which is also what the validator uses to recognize a truthy
// environment-variable fallback for flag-like actions.
func Bool(raw []byte) (bool, error) {
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q: %w", raw, err)
	}
	return v, nil
}

// Int parses a decimal (or 0x/0o/0b-prefixed) integer.
func Int(raw []byte) (int64, error) {
	v, err := strconv.ParseInt(string(raw), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", raw, err)
	}
	return v, nil
}

// Uint parses an unsigned integer.
func Uint(raw []byte) (uint64, error) {
	v, err := strconv.ParseUint(string(raw), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned integer %q: %w", raw, err)
	}
	return v, nil
}

// Float parses a floating-point value.
func Float(raw []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q: %w", raw, err)
	}
	return v, nil
}

// Duration parses a Go duration string ("1h30m").
func Duration(raw []byte) (time.Duration, error) {
	v, err := time.ParseDuration(string(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	return v, nil
}

// Time parses a timestamp in whatever format the user supplied, without
// requiring the caller to declare a layout up front.
func Time(raw []byte) (time.Time, error) {
	v, err := dateparse.ParseLocal(string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return v, nil
}
