package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar(t *testing.T) {
	t.Setenv("FUSE_TEST_VAR", `  "quoted"  `)
	assert.Equal(t, "quoted", Var("FUSE_TEST_VAR"))
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("FUSE_DEBUG", value)
			assert.Equal(t, want, LogLevel())
		})
	}
}

func TestUint(t *testing.T) {
	get := Uint("FUSE_TEST_UINT", 7)

	t.Setenv("FUSE_TEST_UINT", "")
	assert.Equal(t, uint(7), get())

	t.Setenv("FUSE_TEST_UINT", "12")
	assert.Equal(t, uint(12), get())

	t.Setenv("FUSE_TEST_UINT", "-3")
	assert.Equal(t, uint(7), get())
}

func TestBenchDefaults(t *testing.T) {
	t.Setenv("FUSE_BENCH_ITERATIONS", "")
	t.Setenv("FUSE_BENCH_WARMUP", "")
	t.Setenv("FUSE_SEED", "")
	t.Setenv("FUSE_NO_UNROLL", "")

	assert.Equal(t, uint(1000), BenchIterations())
	assert.Equal(t, uint(100), BenchWarmup())
	assert.Equal(t, uint64(42), Seed())
	assert.False(t, NoUnroll(false))

	t.Setenv("FUSE_NO_UNROLL", "yes")
	assert.True(t, NoUnroll(false))
}

func TestAsMap(t *testing.T) {
	m := AsMap()
	assert.Contains(t, m, "FUSE_SEED")
	assert.Equal(t, "FUSE_SEED", m["FUSE_SEED"].Name)
}
