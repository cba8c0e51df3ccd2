package partition

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neatniets/number-partitioning-genetic-algorithm/config"
	"github.com/neatniets/number-partitioning-genetic-algorithm/ga"
	"github.com/neatniets/number-partitioning-genetic-algorithm/problem"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

func concat(a, b []int64) []int64 {
	return append(append([]int64(nil), a...), b...)
}

func TestSolveBalancedScenarios(t *testing.T) {
	tests := []struct {
		name  string
		items []int64
		set0  []int64
		set1  []int64
	}{
		{"distinct", []int64{4, 3, 2, 1}, []int64{4, 1}, []int64{3, 2}},
		{"identical", []int64{1, 1, 1, 1}, nil, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for seed := uint64(1); seed <= 5; seed++ {
				res, err := Solve(context.Background(), test.items,
					WithSeed(seed), WithPopulationSize(4))
				require.NoError(t, err)

				assert.Equal(t, int64(0), res.Fitness, "seed %d", seed)
				assert.LessOrEqual(t, res.Generations, ga.DefaultMaxGenerations)
				assert.Equal(t, problem.Sum(res.Set0), problem.Sum(res.Set1))
				assert.ElementsMatch(t, test.items, concat(res.Set0, res.Set1))
				if test.set0 != nil {
					assert.Equal(t, test.set0, res.Set0)
					assert.Equal(t, test.set1, res.Set1)
				} else {
					assert.Len(t, res.Set0, 2)
					assert.Len(t, res.Set1, 2)
				}
			}
		})
	}
}

func TestSolveRoundTrip(t *testing.T) {
	items := []int64{31, -7, 19, 4, 23, 13, 29, 2, 17, 11, 3, 5, 97, 41, 37, 8, 8, 0, -12}
	res, err := Solve(context.Background(), items, WithSeed(3), WithMaxGenerations(25))
	require.NoError(t, err)

	assert.Len(t, concat(res.Set0, res.Set1), len(items))
	assert.ElementsMatch(t, items, concat(res.Set0, res.Set1))
	assert.Equal(t, items[0], res.Set0[0], "the first item is always in set 0")

	diff := problem.Sum(res.Set0) - problem.Sum(res.Set1)
	if diff < 0 {
		diff = -diff
	}
	assert.Equal(t, res.Fitness, diff)
	assert.Equal(t, uint64(3), res.Seed)
}

func TestSolveIsReproducible(t *testing.T) {
	items := []int64{31, 7, 19, 4, 23, 13, 29, 2, 17, 11, 3, 5, 97, 41, 37, 8}
	a, err := Solve(context.Background(), items, WithSeed(77), WithMaxGenerations(20))
	require.NoError(t, err)
	b, err := Solve(context.Background(), items, WithSource(rng.New(77)), WithMaxGenerations(20))
	require.NoError(t, err)

	assert.Equal(t, a.Set0, b.Set0)
	assert.Equal(t, a.Set1, b.Set1)
	assert.Equal(t, a.Generations, b.Generations)
}

func TestSolveSeedsDiffer(t *testing.T) {
	items := []int64{31, 7, 19, 4, 23, 13, 29, 2, 17, 11, 3, 5, 97, 41, 37, 8}
	initial := func(seed uint64) []int {
		var loci []int
		_, err := Solve(context.Background(), items,
			WithSeed(seed),
			WithMaxGenerations(2),
			WithObserver(func(s ga.Stats) {
				if s.Generation == 1 {
					loci = s.Loci
				}
			}),
		)
		require.NoError(t, err)
		require.Len(t, loci, len(items))
		return loci
	}

	for _, seeds := range [][2]uint64{
		{3, 3 + (1<<31 - 1)},
		{1, 1 << 31},
		{7, 7 + 1<<32},
	} {
		assert.NotEqual(t, initial(seeds[0]), initial(seeds[1]), "seeds %d and %d", seeds[0], seeds[1])
	}
	assert.Equal(t, initial(3), initial(3))
}

func TestSolveErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Solve(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, problem.ErrEmpty)

	_, err = Solve(ctx, []int64{1, 2}, WithPopulationSize(-1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Solve(ctx, []int64{1, 2}, WithMaxGenerations(-1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Solve(ctx, []int64{math.MaxInt64, 1})
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = Solve(ctx, []int64{math.MinInt64})
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	for _, opt := range []Option{
		WithPopulationSize(1 << 62),
		WithPopulationSize(math.MaxInt),
		WithPopulationFactor(math.MaxInt/2 + 1),
	} {
		assert.NotPanics(t, func() {
			_, err = Solve(ctx, []int64{1, 2, 3}, opt)
		})
		assert.ErrorIs(t, err, ErrOutOfMemory)
	}
	_, err = Solve(ctx, []int64{1, 2, 3}, WithPopulationSize(100), WithMemoryLimit(10))
	assert.ErrorIs(t, err, ErrOutOfMemory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Solve(cancelled, []int64{2, 4, 6, 1}, WithSeed(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveObserverAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var generations []int
	res, err := Solve(context.Background(), []int64{2, 4, 6, 8, 1},
		WithSeed(5),
		WithMaxGenerations(6),
		WithLogger(logger),
		WithObserver(func(s ga.Stats) {
			generations = append(generations, s.Generation)
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, generations)
	assert.Equal(t, 6, res.Generations)
	assert.Contains(t, buf.String(), `"msg":"partition completed"`)
	assert.Contains(t, buf.String(), `"msg":"generation"`)
	assert.Contains(t, buf.String(), `"loci":[0,`)
	assert.Contains(t, buf.String(), `"seed":5`)
}

func TestSolveWithConfig(t *testing.T) {
	cfg := config.Config{
		MaxGenerations:   4,
		PopulationFactor: 2,
		Seed:             9,
		MemoryLimit:      1 << 20,
		LogLevel:         "error",
		LogFormat:        "text",
	}
	require.NoError(t, cfg.Validate())

	var sizes []int
	res, err := Solve(context.Background(), []int64{2, 4, 6, 8, 10, 1},
		WithConfig(cfg),
		WithObserver(func(s ga.Stats) { sizes = append(sizes, s.Generation) }),
	)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Generations)
	assert.Equal(t, uint64(9), res.Seed)
	assert.Len(t, sizes, 4)
}

func TestWithConfigLogFormat(t *testing.T) {
	for format, handler := range map[string]slog.Handler{
		"json": &slog.JSONHandler{},
		"JSON": &slog.JSONHandler{},
		"Json": &slog.JSONHandler{},
		"text": &slog.TextHandler{},
		"TEXT": &slog.TextHandler{},
	} {
		cfg := config.Config{
			MaxGenerations:   10,
			PopulationFactor: 1,
			MemoryLimit:      1 << 20,
			LogLevel:         "info",
			LogFormat:        format,
		}
		require.NoError(t, cfg.Validate(), format)

		var o options
		WithConfig(cfg)(&o)
		require.NotNil(t, o.logger, format)
		assert.IsType(t, handler, o.logger.Handler(), format)
	}
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(ga.ErrOutOfMemory), ErrOutOfMemory)
	assert.ErrorIs(t, translateError(problem.ErrLengthMismatch), ErrInvalidArgument)
	assert.Equal(t, context.Canceled, translateError(context.Canceled))
}
