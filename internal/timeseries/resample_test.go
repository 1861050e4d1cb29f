package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a well-formed series", func(t *testing.T) {
		t.Parallel()
		err := Validate([]float64{0, 1, 2}, []float64{5, 6, 7})
		assert.NoError(t, err)
	})

	t.Run("rejects too few samples", func(t *testing.T) {
		t.Parallel()
		err := Validate([]float64{0}, []float64{1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects mismatched axis length", func(t *testing.T) {
		t.Parallel()
		err := Validate([]float64{0, 1, 2}, []float64{5, 6})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects non-increasing timestamps", func(t *testing.T) {
		t.Parallel()
		err := Validate([]float64{0, 2, 2}, []float64{1, 2, 3})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects an all-NaN track", func(t *testing.T) {
		t.Parallel()
		nan := math.NaN()
		err := Validate([]float64{0, 1, 2}, []float64{nan, nan, nan})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDropNaNRows(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	tt, axes := DropNaNRows(
		[]float64{0, 1, 2, 3},
		[]float64{10, nan, 12, 13},
		[]float64{20, 21, 22, nan},
	)

	assert.Equal(t, []float64{0, 2}, tt)
	assert.Equal(t, []float64{10, 12}, axes[0])
	assert.Equal(t, []float64{20, 22}, axes[1])
}

func TestCommonGrid(t *testing.T) {
	t.Parallel()

	t.Run("spans the intersection", func(t *testing.T) {
		t.Parallel()
		g := CommonGrid([]float64{0, 10}, []float64{2, 12}, 1.0)
		assert.Equal(t, 2.0, g.Start)
		assert.Equal(t, 9, g.N) // 2..10 inclusive at 1 Hz
		times := g.Times()
		assert.Equal(t, 2.0, times[0])
		assert.Equal(t, 10.0, times[len(times)-1])
	})

	t.Run("empty when spans do not intersect", func(t *testing.T) {
		t.Parallel()
		g := CommonGrid([]float64{0, 1}, []float64{5, 6}, 100.0)
		assert.Equal(t, 0, g.N)
	})
}

func TestInterp(t *testing.T) {
	t.Parallel()

	ts := []float64{0, 1, 2, 4}
	xs := []float64{0, 10, 20, 40}

	t.Run("linear between brackets", func(t *testing.T) {
		t.Parallel()
		g := Grid{Start: 0.5, Step: 1.0, N: 3}
		got := Interp(ts, xs, g)
		assert.InDeltaSlice(t, []float64{5, 15, 25}, got, 1e-9)
	})

	t.Run("exact sample timestamp returns the sample", func(t *testing.T) {
		t.Parallel()
		g := Grid{Start: 1.0, Step: 1.0, N: 2}
		got := Interp(ts, xs, g)
		assert.InDeltaSlice(t, []float64{10, 20}, got, 1e-12)
	})

	t.Run("irregular source spacing", func(t *testing.T) {
		t.Parallel()
		g := Grid{Start: 3.0, Step: 1.0, N: 1}
		got := Interp(ts, xs, g)
		assert.InDelta(t, 30.0, got[0], 1e-9)
	})
}

func TestResample(t *testing.T) {
	t.Parallel()

	t.Run("shared grid across both series", func(t *testing.T) {
		t.Parallel()
		ta := []float64{0, 1, 2, 3, 4}
		xa := [][]float64{{0, 1, 2, 3, 4}}
		tb := []float64{1.5, 2.5, 3.5, 4.5}
		xb := [][]float64{{15, 25, 35, 45}}

		g, ai, bi, err := Resample(ta, xa, tb, xb, 2.0, 2)
		require.NoError(t, err)
		require.Equal(t, len(ai[0]), g.N)
		require.Equal(t, len(bi[0]), g.N)
		assert.Equal(t, 1.5, g.Start)

		// Both series are linear ramps, so interpolation is exact.
		for i := 0; i < g.N; i++ {
			tc := g.Start + float64(i)*g.Step
			assert.InDelta(t, tc, ai[0][i], 1e-9)
			assert.InDelta(t, tc*10, bi[0][i], 1e-9)
		}
	})

	t.Run("insufficient overlap", func(t *testing.T) {
		t.Parallel()
		ta := []float64{0, 1, 2}
		tb := []float64{1.9, 3, 4}
		_, _, _, err := Resample(ta, [][]float64{{1, 2, 3}}, tb, [][]float64{{4, 5, 6}}, 10.0, 8)
		assert.ErrorIs(t, err, ErrInsufficientOverlap)
	})

	t.Run("disjoint spans", func(t *testing.T) {
		t.Parallel()
		ta := []float64{0, 1}
		tb := []float64{10, 11}
		_, _, _, err := Resample(ta, [][]float64{{1, 2}}, tb, [][]float64{{3, 4}}, 100.0, 8)
		assert.ErrorIs(t, err, ErrInsufficientOverlap)
	})

	t.Run("NaN rows are excluded before gridding", func(t *testing.T) {
		t.Parallel()
		nan := math.NaN()
		ta := []float64{0, 1, 2, 3}
		xa := [][]float64{{0, nan, 2, 3}}
		tb := []float64{0, 1, 2, 3}
		xb := [][]float64{{0, 10, 20, 30}}

		g, ai, _, err := Resample(ta, xa, tb, xb, 1.0, 2)
		require.NoError(t, err)
		for _, v := range ai[0] {
			assert.False(t, math.IsNaN(v))
		}
		assert.Equal(t, 4, g.N)
	})
}
