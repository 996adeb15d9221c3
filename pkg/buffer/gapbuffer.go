package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrOutOfRange is returned for edit positions outside the text.
var ErrOutOfRange = errors.New("buffer: position out of range")

const minGap = 128

// GapBuffer stores runes with a movable gap at the edit position. Offsets
// are rune indices into the logical text, which excludes the gap.
type GapBuffer struct {
	buf      []rune
	gapStart int
	gapEnd   int

	// derived from the text, rebuilt lazily after an edit
	text       string
	lines      []string
	lineStarts []int
	fresh      bool
}

// NewGapBuffer creates an empty GapBuffer with room for capacity runes.
func NewGapBuffer(capacity int) *GapBuffer {
	if capacity < 1 {
		capacity = minGap
	}
	return &GapBuffer{buf: make([]rune, capacity), gapEnd: capacity}
}

// NewGapBufferFromString initializes a GapBuffer holding s.
func NewGapBufferFromString(s string) *GapBuffer {
	runes := []rune(s)
	g := NewGapBuffer(len(runes) + minGap)
	g.gapStart = copy(g.buf, runes)
	return g
}

// Len returns the number of runes in the text.
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

func (g *GapBuffer) gap() int { return g.gapEnd - g.gapStart }

// grow makes room for at least n more runes in the gap.
func (g *GapBuffer) grow(n int) {
	if g.gap() >= n {
		return
	}
	size := max(len(g.buf)*2, len(g.buf)+n-g.gap()+minGap)
	next := make([]rune, size)
	copy(next, g.buf[:g.gapStart])
	tail := g.buf[g.gapEnd:]
	end := size - len(tail)
	copy(next[end:], tail)
	g.buf, g.gapEnd = next, end
}

// moveGap places the gap at pos, which must be in [0, Len()].
func (g *GapBuffer) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		n := g.gapStart - pos
		copy(g.buf[g.gapEnd-n:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapStart -= n
		g.gapEnd -= n
	case pos > g.gapStart:
		n := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+n], g.buf[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// Insert inserts s before the rune at pos. pos may equal Len().
func (g *GapBuffer) Insert(pos int, s []rune) error {
	if pos < 0 || pos > g.Len() {
		return fmt.Errorf("%w: insert at %d of %d", ErrOutOfRange, pos, g.Len())
	}
	if len(s) == 0 {
		return nil
	}
	g.moveGap(pos)
	g.grow(len(s))
	g.gapStart += copy(g.buf[g.gapStart:], s)
	g.fresh = false
	return nil
}

// Delete removes the runes in [start, end).
func (g *GapBuffer) Delete(start, end int) error {
	if start < 0 || end < start || end > g.Len() {
		return fmt.Errorf("%w: delete [%d, %d) of %d", ErrOutOfRange, start, end, g.Len())
	}
	if start == end {
		return nil
	}
	g.moveGap(start)
	g.gapEnd += end - start
	g.fresh = false
	return nil
}

// Slice returns a copy of the runes in [start, end), clamped to the text.
func (g *GapBuffer) Slice(start, end int) []rune {
	start = max(start, 0)
	end = min(end, g.Len())
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	if start < g.gapStart {
		out = append(out, g.buf[start:min(end, g.gapStart)]...)
	}
	if end > g.gapStart {
		from := max(start, g.gapStart) + g.gap()
		out = append(out, g.buf[from:end+g.gap()]...)
	}
	return out
}

// RuneAt returns the rune at index i, or 0 when i is out of bounds.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[i+g.gap()]
}

func (g *GapBuffer) refresh() {
	if g.fresh {
		return
	}
	g.text = string(g.Slice(0, g.Len()))
	g.lines = strings.Split(g.text, "\n")
	g.lineStarts = g.lineStarts[:0]
	pos := 0
	for _, l := range g.lines {
		g.lineStarts = append(g.lineStarts, pos)
		pos += utf8.RuneCountInString(l) + 1
	}
	g.fresh = true
}

// String returns the whole text.
func (g *GapBuffer) String() string {
	g.refresh()
	return g.text
}

// Lines returns the text split at '\n'. The result is shared until the
// next edit and must not be modified.
func (g *GapBuffer) Lines() []string {
	g.refresh()
	return g.lines
}

// LineCount returns the number of lines; an empty text has one.
func (g *GapBuffer) LineCount() int {
	g.refresh()
	return len(g.lineStarts)
}

// LineOf returns the 0-based line holding offset pos. Offsets past the
// end map to the last line.
func (g *GapBuffer) LineOf(pos int) int {
	g.refresh()
	return max(sort.SearchInts(g.lineStarts, pos+1)-1, 0)
}

// LineAt returns the bounds of line idx (0-based). end is one past the
// line's last rune and includes its '\n' when present. Indices past the end
// select the last line.
func (g *GapBuffer) LineAt(idx int) (start, end int) {
	g.refresh()
	idx = max(0, min(idx, len(g.lineStarts)-1))
	start = g.lineStarts[idx]
	if idx+1 < len(g.lineStarts) {
		return start, g.lineStarts[idx+1]
	}
	return start, g.Len()
}
