package idset

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/vocprep/types"
)

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%06d", i)
	}
	return ids
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestSplitIDs_Partition(t *testing.T) {
	sizes := []int{0, 1, 2, 7, 10, 101}
	ratios := []float64{0.01, 0.25, 0.5, 0.8, 0.99}

	for _, n := range sizes {
		for _, r := range ratios {
			t.Run(fmt.Sprintf("n=%d/r=%g", n, r), func(t *testing.T) {
				ids := makeIDs(n)
				split, err := SplitIDs(ids, r, NewShuffler(-1))
				require.NoError(t, err)

				assert.Len(t, split.Trainval, int(math.Floor(float64(n)*r)))
				assert.Len(t, split.Test, n-len(split.Trainval))

				all := append(append([]string(nil), split.Trainval...), split.Test...)
				assert.Equal(t, ids, sorted(all))
			})
		}
	}
}

func TestSplitIDs_DoesNotMutateInput(t *testing.T) {
	ids := makeIDs(20)
	orig := append([]string(nil), ids...)

	_, err := SplitIDs(ids, 0.5, NewShuffler(1))
	require.NoError(t, err)
	assert.Equal(t, orig, ids)
}

func TestSplitIDs_AppendToTrainvalKeepsTest(t *testing.T) {
	split, err := SplitIDs(makeIDs(10), 0.5, NewShuffler(3))
	require.NoError(t, err)

	first := split.Test[0]
	grown := append(split.Trainval, "extra")
	assert.Len(t, grown, 6)
	assert.Equal(t, first, split.Test[0])
}

func TestSplitIDs_SeededIsReproducible(t *testing.T) {
	ids := makeIDs(50)
	a, err := SplitIDs(ids, 0.8, NewShuffler(42))
	require.NoError(t, err)
	b, err := SplitIDs(ids, 0.8, NewShuffler(42))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSplitIDs_InvalidRatio(t *testing.T) {
	for _, r := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		_, err := SplitIDs(makeIDs(3), r, NewShuffler(1))
		require.Error(t, err, "ratio %g", r)
		assert.True(t, types.IsInvalidArgument(err))
	}
}

func TestWriteSplit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSplit(dir, Split{Trainval: []string{"a", "b"}, Test: []string{"c"}}))

	tv, err := ReadFile(filepath.Join(dir, TrainvalFile))
	require.NoError(t, err)
	te, err := ReadFile(filepath.Join(dir, TestFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tv)
	assert.Equal(t, []string{"c"}, te)
}

func TestJoin(t *testing.T) {
	got, err := Join([][]string{{"1", "2", "3"}, {"3", "4"}}, NewShuffler(-1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, got)
}

func TestJoin_EmptyListsContributeNothing(t *testing.T) {
	got, err := Join([][]string{{}, {"a", "a"}, nil}, NewShuffler(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	got, err = Join([][]string{{}}, NewShuffler(1))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJoin_NoLists(t *testing.T) {
	_, err := Join(nil, NewShuffler(1))
	require.Error(t, err)
	assert.True(t, types.IsInvalidArgument(err))
}

func TestJoin_SeededIsReproducible(t *testing.T) {
	lists := [][]string{makeIDs(30), makeIDs(40)}
	a, err := Join(lists, NewShuffler(7))
	require.NoError(t, err)
	b, err := Join(lists, NewShuffler(7))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 40)
}
