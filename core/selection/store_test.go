package selection

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fruit() []Option {
	return []Option{
		{Key: "1", Label: "Apple", Index: 0},
		{Key: "2", Label: "Banana", Index: 1, FilterWords: []string{"yellow", "fruit"}},
		{Key: "3", Label: "Cherry", Index: 2},
	}
}

func allOn() Config {
	return Config{AllowOrder: true, AllowMoveAll: true, Filter: true}
}

func keysOf(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Key)
	}
	return out
}

func assertPartition(t *testing.T, s *Store) {
	t.Helper()
	avail := keysOf(s.Available())
	sel := s.SelectedKeys()
	seen := make(map[string]int)
	for _, k := range avail {
		seen[k]++
	}
	for _, k := range sel {
		seen[k]++
	}
	for _, o := range s.Options() {
		require.Equalf(t, 1, seen[o.Key], "key %s must be in exactly one pane", o.Key)
	}
	require.Len(t, seen, len(s.Options()))
}

func TestExampleScenario(t *testing.T) {
	s := New(fruit(), nil, allOn())

	require.True(t, s.MoveToSelected("2"))
	assert.Equal(t, []string{"2"}, s.SelectedKeys())
	assert.Equal(t, []string{"1", "3"}, keysOf(s.Available()))

	s.SetQuery("yellow")
	assert.Empty(t, s.Visible())

	require.True(t, s.MoveToAvailable("2"))
	s.SetQuery("")
	assert.Equal(t, []string{"1", "2", "3"}, keysOf(s.Visible()))
	assert.Empty(t, s.SelectedKeys())
	assertPartition(t, s)
}

func TestNewDropsUnknownAndDuplicateInitialKeys(t *testing.T) {
	opts := append(fruit(), Option{Key: "1", Label: "Apple again", Index: 9})
	s := New(opts, []string{"3", "x", "3", "1"}, allOn())
	assert.Equal(t, []string{"3", "1"}, s.SelectedKeys())
	assert.Len(t, s.Options(), 3)
	o, ok := s.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "Apple", o.Label)
}

func TestOptionsFollowOrdinalIndex(t *testing.T) {
	s := New([]Option{
		{Key: "c", Label: "C", Index: 2},
		{Key: "a", Label: "A", Index: 0},
		{Key: "b", Label: "B", Index: 1},
	}, nil, allOn())
	assert.Equal(t, []string{"a", "b", "c"}, keysOf(s.Options()))
}

func TestOptionsSortExtremeOrdinals(t *testing.T) {
	s := New([]Option{
		{Key: "max", Label: "Max", Index: math.MaxInt},
		{Key: "min", Label: "Min", Index: math.MinInt},
		{Key: "zero", Label: "Zero", Index: 0},
	}, nil, allOn())
	assert.Equal(t, []string{"min", "zero", "max"}, keysOf(s.Options()))
}

func TestExactLabelQueryKeepsOptionVisible(t *testing.T) {
	s := New([]Option{{Key: "ny", Label: "New  York"}, {Key: "la", Label: "Los Angeles", Index: 1}}, nil, Config{Filter: true})
	s.SetQuery("New  York")
	assert.Equal(t, []string{"ny"}, keysOf(s.Visible()))
	s.SetSelectionQuery("New  York")
	s.MoveToSelected("ny")
	assert.Equal(t, []string{"ny"}, keysOf(s.VisibleSelection()))
}

func TestMoveToSelectedAppendsInGivenOrderAndIgnoresUnknown(t *testing.T) {
	s := New(fruit(), nil, allOn())
	assert.True(t, s.MoveToSelected("3", "nope", "1"))
	assert.Equal(t, []string{"3", "1"}, s.SelectedKeys())
	assert.False(t, s.MoveToSelected("3"), "already selected keys are a no-op")
	assert.False(t, s.MoveToSelected("nope"))
	assert.Equal(t, []string{"3", "1"}, s.SelectedKeys())
}

func TestMoveToAvailableRestoresCanonicalOrder(t *testing.T) {
	s := New(fruit(), []string{"3", "1", "2"}, allOn())
	require.True(t, s.MoveToAvailable("2", "3"))
	assert.Equal(t, []string{"2", "3"}, keysOf(s.Available()))
	assert.Equal(t, []string{"1"}, s.SelectedKeys())
	assert.False(t, s.MoveToAvailable("2", "missing"))
}

func TestRoundTripRestoresMembership(t *testing.T) {
	s := New(fruit(), []string{"1"}, allOn())
	before := keysOf(s.Available())
	s.MoveToSelected("2", "3")
	s.MoveToAvailable("2", "3")
	if diff := cmp.Diff(before, keysOf(s.Available())); diff != "" {
		t.Fatalf("available mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveAllRespectsConfigAndFilter(t *testing.T) {
	s := New(fruit(), nil, Config{Filter: true})
	assert.False(t, s.MoveAllToSelected())
	assert.Empty(t, s.SelectedKeys())

	s = New(fruit(), nil, allOn())
	s.SetQuery("RR")
	require.True(t, s.MoveAllToSelected())
	assert.Equal(t, []string{"3"}, s.SelectedKeys())
	assert.Equal(t, []string{"1", "2"}, keysOf(s.Available()), "filtered-out options stay available")

	s.SetQuery("")
	require.True(t, s.MoveAllToSelected())
	assert.Equal(t, []string{"3", "1", "2"}, s.SelectedKeys())

	require.True(t, s.MoveAllToAvailable())
	assert.Empty(t, s.SelectedKeys())
	assert.False(t, s.MoveAllToAvailable())
}

func TestReorder(t *testing.T) {
	s := New(fruit(), []string{"1", "2", "3"}, allOn())

	assert.False(t, s.Reorder("1", Up), "first element cannot move up")
	assert.False(t, s.Reorder("3", Down), "last element cannot move down")

	require.True(t, s.Reorder("2", Up))
	assert.Equal(t, []string{"2", "1", "3"}, s.SelectedKeys())
	require.True(t, s.Reorder("2", Down))
	assert.Equal(t, []string{"1", "2", "3"}, s.SelectedKeys())

	assert.False(t, s.Reorder("missing", Up))
}

func TestReorderSingleElementIsNoop(t *testing.T) {
	s := New(fruit(), []string{"2"}, allOn())
	assert.False(t, s.Reorder("2", Up))
	assert.False(t, s.Reorder("2", Down))
	assert.Equal(t, []string{"2"}, s.SelectedKeys())
}

func TestReorderDisabled(t *testing.T) {
	s := New(fruit(), []string{"1", "2"}, Config{})
	assert.False(t, s.Reorder("2", Up))
	assert.False(t, s.CanShift([]string{"2"}, Up))
	assert.Equal(t, []string{"1", "2"}, s.SelectedKeys())
}

func TestShiftMovesBlocks(t *testing.T) {
	opts := []Option{
		{Key: "a", Index: 0}, {Key: "b", Index: 1}, {Key: "c", Index: 2},
		{Key: "d", Index: 3}, {Key: "e", Index: 4},
	}
	s := New(opts, []string{"a", "b", "c", "d", "e"}, allOn())

	require.True(t, s.Shift([]string{"a", "c", "d"}, Up))
	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, s.SelectedKeys())

	assert.False(t, s.CanShift([]string{"a", "c", "d"}, Up))
	assert.False(t, s.Shift([]string{"a", "c", "d"}, Up), "block pinned at the top")
	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, s.SelectedKeys())

	require.True(t, s.Shift([]string{"a", "e"}, Down))
	assert.Equal(t, []string{"c", "a", "d", "b", "e"}, s.SelectedKeys())
	assert.False(t, s.CanShift([]string{"e"}, Down))
	assert.True(t, s.CanShift([]string{"a", "e"}, Down))
}

func TestShiftClearsSelectionQuery(t *testing.T) {
	s := New(fruit(), []string{"1", "2", "3"}, allOn())
	s.SetSelectionQuery("cher")
	assert.Equal(t, []string{"3"}, keysOf(s.VisibleSelection()))
	s.Reorder("3", Up)
	assert.Empty(t, s.SelectionQuery())
	assert.Len(t, s.VisibleSelection(), 3)
}

func TestSetQueryVisibility(t *testing.T) {
	s := New(fruit(), nil, allOn())
	assert.True(t, s.SetQuery("AN"))
	assert.Equal(t, []string{}, keysOf(s.Visible()), "banana matches on filter words, not label")
	s.SetQuery("fru")
	assert.Equal(t, []string{"2"}, keysOf(s.Visible()))
	assert.True(t, s.IsVisible("2"))
	assert.False(t, s.IsVisible("1"))
	assert.False(t, s.SetQuery("fru"))

	s.SetQuery("")
	assert.Equal(t, keysOf(s.Available()), keysOf(s.Visible()))
}

func TestSetQueryIgnoredWithoutFilter(t *testing.T) {
	s := New(fruit(), nil, Config{})
	assert.False(t, s.SetQuery("apple"))
	assert.Empty(t, s.Query())
	assert.Len(t, s.Visible(), 3)
}

func TestNilStoreIsInert(t *testing.T) {
	var s *Store
	assert.False(t, s.MoveToSelected("1"))
	assert.False(t, s.MoveToAvailable("1"))
	assert.False(t, s.MoveAllToSelected())
	assert.False(t, s.Reorder("1", Up))
	assert.False(t, s.SetQuery("x"))
	assert.Nil(t, s.SelectedKeys())
}

func TestRandomOperationsKeepPartition(t *testing.T) {
	opts := make([]Option, 0, 20)
	keys := make([]string, 0, 21)
	for i := 0; i < 20; i++ {
		k := string(rune('a' + i))
		opts = append(opts, Option{Key: k, Label: "Item " + k, Index: i})
		keys = append(keys, k)
	}
	keys = append(keys, "zz")

	rng := rand.New(rand.NewSource(7))
	s := New(opts, nil, allOn())
	for step := 0; step < 500; step++ {
		pick := func() string { return keys[rng.Intn(len(keys))] }
		switch rng.Intn(7) {
		case 0:
			s.MoveToSelected(pick(), pick())
		case 1:
			s.MoveToAvailable(pick())
		case 2:
			s.MoveAllToSelected()
		case 3:
			s.MoveAllToAvailable()
		case 4:
			s.Reorder(pick(), Direction(rng.Intn(2)))
		case 5:
			s.SetQuery(pick())
		case 6:
			s.SetQuery("")
		}
		assertPartition(t, s)
		sel := s.SelectedKeys()
		require.Equal(t, len(sel), len(slices.Compact(slices.Sorted(slices.Values(sel)))), "selection has duplicates")
	}
}
