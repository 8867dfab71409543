// SPDX-License-Identifier: MIT

// Package envconfig reads process-level settings from LVMARRAY_* environment
// variables. Every getter re-reads the environment, so tests can use t.Setenv.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns the value of key with surrounding blanks and quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a getter for a boolean variable. A set but
// unparsable value counts as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}

			return b
		}

		return defaultValue
	}
}

// Bool returns a getter for a boolean variable defaulting to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)

	return func() bool {
		return withDefault(false)
	}
}

// Uint returns a getter for an unsigned variable. Invalid values log a warning
// and fall back to defaultValue.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}

		return defaultValue
	}
}

var (
	// Debug enables debug logging in the CLI (LVMARRAY_DEBUG).
	Debug = Bool("LVMARRAY_DEBUG")

	// MaxElements caps allocations made by the loaders and the CLI
	// (LVMARRAY_MAX_ELEMENTS). 0 means unlimited.
	MaxElements = Uint("LVMARRAY_MAX_ELEMENTS", 0)
)

// Workers is the number of files the CLI converts concurrently
// (LVMARRAY_WORKERS). Zero is promoted to 1.
func Workers() int {
	n := Uint("LVMARRAY_WORKERS", 4)()
	if n == 0 {
		return 1
	}

	return int(n)
}

// LogLevel maps LVMARRAY_DEBUG to a slog level: a true boolean selects Debug,
// an integer n selects slog.Level(-4n), anything else keeps Info.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("LVMARRAY_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// EnvVar describes one variable for `lvmarray env`.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every known variable with its effective value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"LVMARRAY_DEBUG":        {"LVMARRAY_DEBUG", LogLevel(), "Show additional debug information (e.g. LVMARRAY_DEBUG=1)"},
		"LVMARRAY_MAX_ELEMENTS": {"LVMARRAY_MAX_ELEMENTS", MaxElements(), "Maximum element count of a loaded array (0: unlimited)"},
		"LVMARRAY_WORKERS":      {"LVMARRAY_WORKERS", Workers(), "Files converted concurrently (default 4)"},
	}
}

// Values returns AsMap rendered as strings.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}

	return vals
}
