package buffer

import (
	"slices"
	"strings"

	"example.com/editerako/pkg/history"
)

// MultiCursor is a text buffer edited through a primary caret and zero or
// more secondary carets. Every edit made through it applies at all carets and
// is undone as a single step. Offsets are rune indices.
//
// It is owned by one editor view and is not safe for concurrent use.
type MultiCursor struct {
	buf         *GapBuffer
	hist        *history.History
	primary     int
	secondaries []int
}

// NewMultiCursor wraps text with a single caret at offset 0.
func NewMultiCursor(text string) *MultiCursor {
	return &MultiCursor{buf: NewGapBufferFromString(text), hist: history.New()}
}

// Buffer exposes the underlying storage for read access.
func (m *MultiCursor) Buffer() *GapBuffer { return m.buf }

func (m *MultiCursor) Text() string { return m.buf.String() }
func (m *MultiCursor) Len() int     { return m.buf.Len() }
func (m *MultiCursor) Primary() int { return m.primary }

// Secondaries returns the secondary carets in ascending order.
func (m *MultiCursor) Secondaries() []int { return slices.Clone(m.secondaries) }

// Carets returns every caret in ascending order, primary included.
func (m *MultiCursor) Carets() []int {
	out := append(slices.Clone(m.secondaries), m.primary)
	slices.Sort(out)
	return out
}

// SetText replaces the whole content, resets history and collapses to a
// single caret at offset 0.
func (m *MultiCursor) SetText(text string) {
	m.buf = NewGapBufferFromString(text)
	m.hist.Reset()
	m.primary = 0
	m.secondaries = nil
}

// MoveTo moves the primary caret, keeping the secondaries.
func (m *MultiCursor) MoveTo(pos int) {
	m.primary = m.clamp(pos)
	m.normalize()
}

// AddSecondary adds a secondary caret at pos.
func (m *MultiCursor) AddSecondary(pos int) {
	m.secondaries = append(m.secondaries, m.clamp(pos))
	m.normalize()
}

// ClearSecondaries reverts to single-caret editing.
func (m *MultiCursor) ClearSecondaries() { m.secondaries = nil }

// Click handles a pointer press at pos. Without the modifier it clears the
// secondaries and moves the primary caret; with it, it toggles a secondary
// caret at pos.
func (m *MultiCursor) Click(pos int, modifier bool) {
	pos = m.clamp(pos)
	if !modifier {
		m.secondaries = nil
		m.primary = pos
		return
	}
	if i, found := slices.BinarySearch(m.secondaries, pos); found {
		m.secondaries = slices.Delete(m.secondaries, i, i+1)
		return
	}
	m.AddSecondary(pos)
}

// Insert types text at every caret. Each caret ends up after its copy of
// the text.
func (m *MultiCursor) Insert(text string) error {
	if text == "" {
		return nil
	}
	r := []rune(text)
	return m.edit(func(pos int) (start, end int, ins []rune) {
		return pos, pos, r
	})
}

// Delete removes one rune at every caret: the one before it when backspace
// is set, the one after it otherwise. Carets at the edge of the text are
// left alone.
func (m *MultiCursor) Delete(backspace bool) error {
	return m.edit(func(pos int) (start, end int, ins []rune) {
		if backspace {
			if pos == 0 {
				return pos, pos, nil
			}
			return pos - 1, pos, nil
		}
		if pos >= m.buf.Len() {
			return pos, pos, nil
		}
		return pos, pos + 1, nil
	})
}

// InsertAt inserts text at a single offset, independent of the carets.
// Carets after pos shift by the inserted length; carets before it stay.
// A caret exactly at pos moves past the text.
func (m *MultiCursor) InsertAt(pos int, text string) error {
	if text == "" {
		return nil
	}
	pos = m.clamp(pos)
	r := []rune(text)
	m.hist.Begin(m.snapshot())
	defer func() { m.hist.End(m.snapshot()) }()
	if err := m.buf.Insert(pos, r); err != nil {
		return err
	}
	m.hist.RecordInsert(pos, text)
	carets := m.all()
	for i := range carets {
		if carets[i] >= pos {
			carets[i] += len(r)
		}
	}
	m.restore(carets)
	return nil
}

type caretEdit func(pos int) (start, end int, ins []rune)

// edit applies fn at every caret from the highest offset to the lowest,
// shifting the carets already processed by each edit's delta.
func (m *MultiCursor) edit(fn caretEdit) error {
	carets := m.all()
	order := make([]int, len(carets))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return carets[b] - carets[a] })

	m.hist.Begin(m.snapshot())
	defer func() { m.hist.End(m.snapshot()) }()
	for _, idx := range order {
		start, end, ins := fn(carets[idx])
		if end > start {
			deleted := string(m.buf.Slice(start, end))
			if err := m.buf.Delete(start, end); err != nil {
				m.restore(carets)
				return err
			}
			m.hist.RecordDelete(start, deleted)
			shiftDelete(carets, start, end)
		}
		if len(ins) > 0 {
			if err := m.buf.Insert(start, ins); err != nil {
				m.restore(carets)
				return err
			}
			m.hist.RecordInsert(start, string(ins))
			shiftInsert(carets, idx, start, len(ins))
		}
	}
	m.restore(carets)
	return nil
}

func shiftDelete(carets []int, start, end int) {
	for i, c := range carets {
		switch {
		case c >= end:
			carets[i] = c - (end - start)
		case c > start:
			carets[i] = start
		}
	}
}

// shiftInsert moves carets after an insertion at pos. The caret that typed
// the text lands after it.
func shiftInsert(carets []int, self, pos, n int) {
	for i, c := range carets {
		if c > pos || i == self {
			carets[i] = c + n
		}
	}
}

// Undo reverts the last edit and restores the carets it started from.
func (m *MultiCursor) Undo() error {
	e, err := m.hist.Undo(m.buf)
	if err != nil {
		return err
	}
	m.restore(e.Before)
	return nil
}

// Redo reapplies the last undone edit.
func (m *MultiCursor) Redo() error {
	e, err := m.hist.Redo(m.buf)
	if err != nil {
		return err
	}
	m.restore(e.After)
	return nil
}

// CanUndo reports whether Undo has anything to revert.
func (m *MultiCursor) CanUndo() bool { return m.hist.CanUndo() }

// SwapLineUp exchanges the primary caret's line with the one above it. The
// caret follows its line; secondaries are cleared. It reports whether the
// text changed, which it does not on the first line.
func (m *MultiCursor) SwapLineUp() (bool, error) {
	line := m.lineOf(m.primary)
	if line == 0 {
		return false, nil
	}
	if err := m.swapLines(line-1, line, true); err != nil {
		return false, err
	}
	return true, nil
}

// SwapLineDown exchanges the primary caret's line with the one below it.
// Like SwapLineUp it reports whether the text changed.
func (m *MultiCursor) SwapLineDown() (bool, error) {
	line := m.lineOf(m.primary)
	if line >= m.lineCount()-1 {
		return false, nil
	}
	if err := m.swapLines(line, line+1, false); err != nil {
		return false, err
	}
	return true, nil
}

// swapLines exchanges lines a and b, where b follows a. caretOnLower is set
// when the primary caret sits on b.
func (m *MultiCursor) swapLines(a, b int, caretOnLower bool) error {
	lines := strings.Split(m.buf.String(), "\n")
	aStart, _ := m.buf.LineAt(a)
	bStart, _ := m.buf.LineAt(b)
	upper, lower := []rune(lines[a]), []rune(lines[b])
	end := bStart + len(lower)

	col := m.primary - aStart
	if caretOnLower {
		col = m.primary - bStart
	}

	m.secondaries = nil
	m.hist.Begin(m.snapshot())
	defer func() { m.hist.End(m.snapshot()) }()

	old := string(m.buf.Slice(aStart, end))
	if err := m.buf.Delete(aStart, end); err != nil {
		return err
	}
	m.hist.RecordDelete(aStart, old)
	swapped := string(lower) + "\n" + string(upper)
	if err := m.buf.Insert(aStart, []rune(swapped)); err != nil {
		return err
	}
	m.hist.RecordInsert(aStart, swapped)

	if caretOnLower {
		// moved up: it now starts the pair
		m.primary = aStart + min(col, len(lower))
	} else {
		m.primary = aStart + len(lower) + 1 + min(col, len(upper))
	}
	return nil
}

func (m *MultiCursor) lineOf(pos int) int { return m.buf.LineOf(pos) }

func (m *MultiCursor) lineCount() int { return m.buf.LineCount() }

func (m *MultiCursor) clamp(pos int) int {
	return max(0, min(pos, m.buf.Len()))
}

// all returns the primary caret followed by the secondaries.
func (m *MultiCursor) all() []int {
	return append([]int{m.primary}, m.secondaries...)
}

func (m *MultiCursor) snapshot() []int { return m.all() }

// restore sets the carets from a primary-first list and normalizes them.
func (m *MultiCursor) restore(carets []int) {
	if len(carets) == 0 {
		return
	}
	m.primary = m.clamp(carets[0])
	m.secondaries = m.secondaries[:0]
	for _, c := range carets[1:] {
		m.secondaries = append(m.secondaries, m.clamp(c))
	}
	m.normalize()
}

// normalize sorts the secondaries, drops duplicates and any that coincide
// with the primary caret.
func (m *MultiCursor) normalize() {
	slices.Sort(m.secondaries)
	m.secondaries = slices.Compact(m.secondaries)
	if i, found := slices.BinarySearch(m.secondaries, m.primary); found {
		m.secondaries = slices.Delete(m.secondaries, i, i+1)
	}
	if len(m.secondaries) == 0 {
		m.secondaries = nil
	}
}
