package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twelve runes so offsets 3, 7 and 10 are all inside the text
const sample = "abcdefghijkl"

func carets(t *testing.T, primary int, secondaries ...int) *MultiCursor {
	t.Helper()
	m := NewMultiCursor(sample)
	m.MoveTo(primary)
	for _, s := range secondaries {
		m.AddSecondary(s)
	}
	return m
}

func TestMultiCursorNormalize(t *testing.T) {
	m := carets(t, 5, 9, 2, 9, 5, 2)
	assert.Equal(t, 5, m.Primary())
	assert.Equal(t, []int{2, 9}, m.Secondaries())
	assert.Equal(t, []int{2, 5, 9}, m.Carets())

	m.AddSecondary(100)
	assert.Equal(t, []int{2, 9, 12}, m.Secondaries(), "clamped to the end")

	m.MoveTo(9)
	assert.Equal(t, []int{2, 12}, m.Secondaries(), "a secondary under the primary is dropped")
}

func TestMultiCursorClick(t *testing.T) {
	m := carets(t, 10)
	m.Click(3, true)
	m.Click(7, true)
	assert.Equal(t, []int{3, 7}, m.Secondaries())

	m.Click(3, true)
	assert.Equal(t, []int{7}, m.Secondaries(), "modifier click on a secondary removes it")

	m.Click(4, false)
	assert.Equal(t, 4, m.Primary())
	assert.Empty(t, m.Secondaries())
}

func TestMultiCursorInsertAtPrimaryLeavesEarlierPoints(t *testing.T) {
	m := carets(t, 10, 3, 7)

	require.NoError(t, m.InsertAt(m.Primary(), "XY"))
	assert.Equal(t, "abcdefghijXYkl", m.Text())
	assert.Equal(t, []int{3, 7}, m.Secondaries())
	assert.Equal(t, 12, m.Primary())

	// Inserting at a secondary point shifts only the points after it.
	require.NoError(t, m.InsertAt(3, "--"))
	assert.Equal(t, "abc--defghijXYkl", m.Text())
	assert.Equal(t, []int{5, 9}, m.Secondaries())
	assert.Equal(t, 14, m.Primary())
}

func TestMultiCursorInsertAtEveryCaret(t *testing.T) {
	m := carets(t, 10, 3, 7)

	require.NoError(t, m.Insert("XY"))
	assert.Equal(t, "abcXYdefgXYhijXYkl", m.Text())
	assert.Equal(t, 16, m.Primary())
	assert.Equal(t, []int{5, 11}, m.Secondaries())

	require.NoError(t, m.Undo())
	assert.Equal(t, sample, m.Text())
	assert.Equal(t, 10, m.Primary())
	assert.Equal(t, []int{3, 7}, m.Secondaries())

	require.NoError(t, m.Redo())
	assert.Equal(t, "abcXYdefgXYhijXYkl", m.Text())
	assert.Equal(t, []int{5, 11}, m.Secondaries())
}

func TestMultiCursorInsertMultibyte(t *testing.T) {
	m := NewMultiCursor("aé\nb")
	m.MoveTo(2)
	m.AddSecondary(4)
	require.NoError(t, m.Insert("中"))
	assert.Equal(t, "aé中\nb中", m.Text())
	assert.Equal(t, 3, m.Primary())
	assert.Equal(t, []int{6}, m.Secondaries())
}

func TestMultiCursorBackspace(t *testing.T) {
	m := carets(t, 10, 3, 7)
	require.NoError(t, m.Delete(true))
	assert.Equal(t, "abdefhikl", m.Text())
	assert.Equal(t, 7, m.Primary())
	assert.Equal(t, []int{2, 5}, m.Secondaries())

	require.NoError(t, m.Undo())
	assert.Equal(t, sample, m.Text())
	assert.Equal(t, []int{3, 7}, m.Secondaries())
}

func TestMultiCursorBackspaceMergesAdjacentCarets(t *testing.T) {
	m := carets(t, 4, 3)
	require.NoError(t, m.Delete(true))
	assert.Equal(t, "abefghijkl", m.Text())
	assert.Equal(t, 2, m.Primary())
	assert.Empty(t, m.Secondaries())
}

func TestMultiCursorForwardDelete(t *testing.T) {
	m := carets(t, 12, 0, 5)
	require.NoError(t, m.Delete(false))
	assert.Equal(t, "bcdeghijkl", m.Text())
	assert.Equal(t, 10, m.Primary())
	assert.Equal(t, []int{0, 4}, m.Secondaries())
}

func TestMultiCursorBackspaceAtStartIsNoop(t *testing.T) {
	m := carets(t, 0)
	require.NoError(t, m.Delete(true))
	assert.Equal(t, sample, m.Text())
	assert.False(t, m.CanUndo())
}

func TestMultiCursorSwapLines(t *testing.T) {
	m := NewMultiCursor("one\ntwo\nthree")
	m.MoveTo(6) // "tw|o"
	m.AddSecondary(0)

	swapped, err := m.SwapLineUp()
	require.NoError(t, err)
	assert.True(t, swapped)
	assert.Equal(t, "two\none\nthree", m.Text())
	assert.Equal(t, 2, m.Primary())
	assert.Empty(t, m.Secondaries())

	swapped, err = m.SwapLineDown()
	require.NoError(t, err)
	assert.True(t, swapped)
	assert.Equal(t, "one\ntwo\nthree", m.Text())
	assert.Equal(t, 6, m.Primary())

	swapped, err = m.SwapLineDown()
	require.NoError(t, err)
	assert.True(t, swapped)
	assert.Equal(t, "one\nthree\ntwo", m.Text())
	assert.Equal(t, 12, m.Primary())

	swapped, err = m.SwapLineDown()
	require.NoError(t, err)
	assert.False(t, swapped, "last line stays put")
	assert.Equal(t, "one\nthree\ntwo", m.Text())

	require.NoError(t, m.Undo())
	assert.Equal(t, "one\ntwo\nthree", m.Text())
	assert.Equal(t, 6, m.Primary())
}

func TestMultiCursorSwapFirstLineUpIsNoop(t *testing.T) {
	m := NewMultiCursor("a\nb")
	swapped, err := m.SwapLineUp()
	require.NoError(t, err)
	assert.False(t, swapped)
	assert.Equal(t, "a\nb", m.Text())
	assert.False(t, m.CanUndo())
}

func TestMultiCursorSetText(t *testing.T) {
	m := carets(t, 4, 1)
	require.NoError(t, m.Insert("z"))
	m.SetText("fresh")
	assert.Equal(t, "fresh", m.Text())
	assert.Equal(t, 0, m.Primary())
	assert.Empty(t, m.Secondaries())
	assert.False(t, m.CanUndo())
}
