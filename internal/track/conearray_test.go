package track_test

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gridline-data/trackmap/internal/render"
	"github.com/gridline-data/trackmap/internal/testutil"
	"github.com/gridline-data/trackmap/internal/track"
)

func TestNewConeArray(t *testing.T) {
	t.Parallel()

	t.Run("length and iteration order match the input", func(t *testing.T) {
		t.Parallel()
		cones := []track.Cone{
			testutil.MustCone(t, 0, 0, track.CategoryBlue),
			testutil.MustCone(t, 1, 0, track.CategoryYellow),
			testutil.MustCone(t, 2, 0, track.CategoryBlue),
		}
		arr, err := track.NewConeArray(cones...)
		require.NoError(t, err)
		assert.Equal(t, len(cones), arr.Len())
		if diff := cmp.Diff(cones, arr.Cones()); diff != "" {
			t.Errorf("cones mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty construction is valid", func(t *testing.T) {
		t.Parallel()
		arr, err := track.NewConeArray()
		require.NoError(t, err)
		assert.Equal(t, 0, arr.Len())
	})

	t.Run("rejects the whole input atomically on one bad element", func(t *testing.T) {
		t.Parallel()
		good := testutil.MustCone(t, 0, 0, track.CategoryBlue)
		bad := track.Cone{Position: r2.Vec{X: math.NaN()}, Category: track.CategoryBlue}

		arr, err := track.NewConeArray(good, bad, good)
		assert.ErrorIs(t, err, track.ErrInvalidElement)
		assert.ErrorIs(t, err, track.ErrInvalidPosition, "cause is wrapped")
		assert.Nil(t, arr, "no partially valid array is produced")
	})

	t.Run("rejects zero-valued cones built without the constructor", func(t *testing.T) {
		t.Parallel()
		_, err := track.NewConeArray(track.Cone{})
		assert.ErrorIs(t, err, track.ErrInvalidElement)
		assert.ErrorIs(t, err, track.ErrInvalidCategory)
	})

	t.Run("input slice mutation does not leak in", func(t *testing.T) {
		t.Parallel()
		cones := []track.Cone{testutil.MustCone(t, 1, 1, track.CategoryOrange)}
		arr, err := track.NewConeArray(cones...)
		require.NoError(t, err)
		cones[0] = testutil.MustCone(t, 9, 9, track.CategoryBlue)

		got, err := arr.At(0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got.X())
	})
}

func TestConeArrayAppendExtend(t *testing.T) {
	t.Parallel()

	t.Run("append grows the array in order", func(t *testing.T) {
		t.Parallel()
		arr := testutil.MustConeArray(t)
		require.NoError(t, arr.Append(testutil.MustCone(t, 0, 0, track.CategoryBlue)))
		require.NoError(t, arr.Append(testutil.MustCone(t, 1, 0, track.CategoryYellow)))
		assert.Equal(t, 2, arr.Len())

		last, err := arr.At(1)
		require.NoError(t, err)
		assert.Equal(t, track.CategoryYellow, last.Category)
	})

	t.Run("append of an invalid cone leaves length unchanged", func(t *testing.T) {
		t.Parallel()
		arr := testutil.MustConeArray(t, testutil.MustCone(t, 0, 0, track.CategoryBlue))
		err := arr.Append(track.Cone{Position: r2.Vec{Y: math.Inf(1)}, Category: track.CategoryBlue})
		assert.ErrorIs(t, err, track.ErrInvalidElement)
		assert.Equal(t, 1, arr.Len())
	})

	t.Run("extend is atomic", func(t *testing.T) {
		t.Parallel()
		arr := testutil.MustConeArray(t, testutil.MustCone(t, 0, 0, track.CategoryBlue))
		batch := []track.Cone{
			testutil.MustCone(t, 1, 0, track.CategoryBlue),
			{}, // invalid
		}
		err := arr.Extend(batch)
		assert.ErrorIs(t, err, track.ErrInvalidElement)
		assert.Equal(t, 1, arr.Len(), "no partial append")

		require.NoError(t, arr.Extend(batch[:1]))
		assert.Equal(t, 2, arr.Len())
	})

	t.Run("duplicate re-detections are permitted", func(t *testing.T) {
		t.Parallel()
		c := testutil.MustCone(t, 2, 2, track.CategoryOrange)
		arr := testutil.MustConeArray(t, c)
		require.NoError(t, arr.Append(c))
		assert.Equal(t, 2, arr.Len())
	})
}

func TestConeArrayAt(t *testing.T) {
	t.Parallel()

	arr := testutil.MustConeArray(t, testutil.MustCone(t, 0, 0, track.CategoryBlue))

	_, err := arr.At(-1)
	assert.ErrorIs(t, err, track.ErrIndexOutOfRange)

	_, err = arr.At(1)
	assert.ErrorIs(t, err, track.ErrIndexOutOfRange)

	got, err := arr.At(0)
	require.NoError(t, err)
	assert.Equal(t, track.CategoryBlue, got.Category)
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	left1 := testutil.MustCone(t, 0, 0, track.CategoryBlue)
	right := testutil.MustCone(t, 1, 0, track.CategoryYellow)
	left2 := testutil.MustCone(t, 2, 0, track.CategoryBlue)
	arr := testutil.MustConeArray(t, left1, right, left2)

	t.Run("keeps matching cones in relative order", func(t *testing.T) {
		t.Parallel()
		blues := arr.FilterByCategory(track.CategoryBlue)
		want := testutil.MustConeArray(t, left1, left2)
		assert.True(t, blues.Equal(want))
	})

	t.Run("no matches yields an empty array, not an error", func(t *testing.T) {
		t.Parallel()
		none := arr.FilterByCategory(track.CategoryOrangeBig)
		require.NotNil(t, none)
		assert.Equal(t, 0, none.Len())
	})

	t.Run("filter is idempotent", func(t *testing.T) {
		t.Parallel()
		once := arr.FilterByCategory(track.CategoryBlue)
		twice := once.FilterByCategory(track.CategoryBlue)
		assert.True(t, once.Equal(twice))
	})

	t.Run("result shares no storage with the source", func(t *testing.T) {
		t.Parallel()
		blues := arr.FilterByCategory(track.CategoryBlue)
		require.NoError(t, blues.Append(testutil.MustCone(t, 9, 9, track.CategoryBlue)))
		assert.Equal(t, 3, arr.Len(), "source array unchanged")
	})
}

func TestConeArrayCategories(t *testing.T) {
	t.Parallel()

	arr := testutil.MustConeArray(t,
		testutil.MustCone(t, 0, 0, track.CategoryYellow),
		testutil.MustCone(t, 1, 0, track.CategoryBlue),
		testutil.MustCone(t, 2, 0, track.CategoryYellow),
		testutil.MustCone(t, 3, 0, track.CategoryOrange),
	)

	want := []track.Category{track.CategoryYellow, track.CategoryBlue, track.CategoryOrange}
	assert.Equal(t, want, slices.Collect(arr.Categories()), "distinct categories in first-observation order")

	// The sequence is restartable.
	assert.Equal(t, want, slices.Collect(arr.Categories()))

	// Early break is honored.
	var first []track.Category
	for cat := range arr.Categories() {
		first = append(first, cat)
		break
	}
	assert.Equal(t, want[:1], first)
}

func TestConeArrayEqual(t *testing.T) {
	t.Parallel()

	a := testutil.MustCone(t, 0, 0, track.CategoryBlue)
	b := testutil.MustCone(t, 1, 0, track.CategoryYellow)
	c := testutil.MustCone(t, 2, 0, track.CategoryOrange)

	t.Run("same cones, same order", func(t *testing.T) {
		t.Parallel()
		assert.True(t, testutil.MustConeArray(t, a, b, c).Equal(testutil.MustConeArray(t, a, b, c)))
	})

	t.Run("same cones, different insertion order are not equal", func(t *testing.T) {
		t.Parallel()
		x := testutil.MustConeArray(t, a, b, c)
		y := testutil.MustConeArray(t, c, b, a)
		assert.False(t, x.Equal(y))
		assert.ElementsMatch(t, slices.Collect(x.Categories()), slices.Collect(y.Categories()),
			"category sets still match even though the arrays differ")
	})

	t.Run("different lengths", func(t *testing.T) {
		t.Parallel()
		assert.False(t, testutil.MustConeArray(t, a).Equal(testutil.MustConeArray(t, a, a)))
	})

	t.Run("nil handling", func(t *testing.T) {
		t.Parallel()
		var nilArr *track.ConeArray
		assert.True(t, nilArr.Equal(nil))
		assert.False(t, testutil.MustConeArray(t).Equal(nil))
	})
}

func TestConeArrayPlot(t *testing.T) {
	t.Parallel()

	t.Run("draws in insertion order", func(t *testing.T) {
		t.Parallel()
		surface := &testutil.RecordingSurface{}
		arr := testutil.MustConeArray(t,
			testutil.MustCone(t, 0, 0, track.CategoryBlue),
			testutil.MustCone(t, 1, 0, track.CategoryYellow),
			testutil.MustCone(t, 2, 0, track.CategoryBlue),
		)

		arr.Plot(surface, nil)

		require.Len(t, surface.Markers, 3)
		assert.Equal(t, []float64{0, 1, 2}, []float64{
			surface.Markers[0].X, surface.Markers[1].X, surface.Markers[2].X,
		})
	})

	t.Run("one legend entry per distinct category", func(t *testing.T) {
		t.Parallel()
		surface := &testutil.RecordingSurface{}
		arr := testutil.MustConeArray(t,
			testutil.MustCone(t, 0, 0, track.CategoryBlue),
			testutil.MustCone(t, 1, 0, track.CategoryBlue),
			testutil.MustCone(t, 2, 0, track.CategoryYellow),
		)

		arr.Plot(surface, nil)

		require.Len(t, surface.Legends, 2)
		assert.Equal(t, "blue", surface.Legends[0].Label)
		assert.Equal(t, "yellow", surface.Legends[1].Label)
	})

	t.Run("per-category style map overrides defaults", func(t *testing.T) {
		t.Parallel()
		surface := &testutil.RecordingSurface{}
		arr := testutil.MustConeArray(t,
			testutil.MustCone(t, 0, 0, track.CategoryBlue),
			testutil.MustCone(t, 1, 0, track.CategoryYellow),
		)

		arr.Plot(surface, map[track.Category]render.Style{
			track.CategoryBlue: {Radius: 11},
		})

		require.Len(t, surface.Markers, 2)
		assert.Equal(t, 11.0, surface.Markers[0].Style.Radius, "blue overridden")
		assert.Equal(t, track.CategoryYellow.DefaultStyle().Radius, surface.Markers[1].Style.Radius, "yellow untouched")
		// Legend shows the effective (merged) style.
		assert.Equal(t, 11.0, surface.Legends[0].Style.Radius)
	})

	t.Run("empty array draws nothing", func(t *testing.T) {
		t.Parallel()
		surface := &testutil.RecordingSurface{}
		testutil.MustConeArray(t).Plot(surface, nil)
		assert.Empty(t, surface.Markers)
		assert.Empty(t, surface.Legends)
	})
}

func TestConeArrayAll(t *testing.T) {
	t.Parallel()

	arr := testutil.MustConeArray(t,
		testutil.MustCone(t, 5, 0, track.CategoryBlue),
		testutil.MustCone(t, 6, 0, track.CategoryYellow),
	)

	var xs []float64
	var idx []int
	for i, c := range arr.All() {
		idx = append(idx, i)
		xs = append(xs, c.X())
	}
	assert.Equal(t, []int{0, 1}, idx)
	assert.Equal(t, []float64{5, 6}, xs)
}

func TestConeArrayString(t *testing.T) {
	t.Parallel()

	arr := testutil.MustConeArray(t, testutil.MustCone(t, 0, 0, track.CategoryBlue))
	assert.Equal(t, "ConeArray[Cone(0, 0, blue)]", arr.String())
}
