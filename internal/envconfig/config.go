// Package envconfig reads fuse settings from FUSE_* environment variables.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable with surrounding spaces and quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the log level.
// Configurable via FUSE_DEBUG: 0/false = INFO (default), 1/true = DEBUG, 2 = TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("FUSE_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Uint returns a function reading an unsigned integer with a default value.
// Invalid values log a warning and fall back to the default.
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

// Uint64 is Uint for 64-bit values.
func Uint64(key string, defaultValue uint64) func() uint64 {
	return func() uint64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// BoolWithDefault returns a function reading a boolean with a default value.
// Any non-empty value that does not parse counts as true.
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

var (
	// BenchIterations is the number of timed calls per benchmark. Configurable via FUSE_BENCH_ITERATIONS.
	BenchIterations = Uint("FUSE_BENCH_ITERATIONS", 1000)
	// BenchWarmup is the number of untimed calls before timing starts. Configurable via FUSE_BENCH_WARMUP.
	BenchWarmup = Uint("FUSE_BENCH_WARMUP", 100)
	// Seed seeds the random operands of the benchmark suite. Configurable via FUSE_SEED.
	Seed = Uint64("FUSE_SEED", 42)
	// NoUnroll disables the unrolled kernel paths. Configurable via FUSE_NO_UNROLL.
	NoUnroll = BoolWithDefault("FUSE_NO_UNROLL")
)

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable keyed by name.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"FUSE_DEBUG":            {"FUSE_DEBUG", LogLevel(), "Show additional debug information (e.g. FUSE_DEBUG=1)"},
		"FUSE_BENCH_ITERATIONS": {"FUSE_BENCH_ITERATIONS", BenchIterations(), "Timed calls per benchmark"},
		"FUSE_BENCH_WARMUP":     {"FUSE_BENCH_WARMUP", BenchWarmup(), "Untimed warmup calls per benchmark"},
		"FUSE_SEED":             {"FUSE_SEED", Seed(), "Seed for benchmark operands"},
		"FUSE_NO_UNROLL":        {"FUSE_NO_UNROLL", NoUnroll(false), "Disable unrolled small-size kernels"},
	}
}
