package history

import (
	"errors"
	"fmt"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Storage is the part of a text buffer that history edits replay against.
// Positions are rune indices.
type Storage interface {
	Insert(pos int, s []rune) error
	Delete(start, end int) error
}

// OpType represents the type of an edit operation.
type OpType int

const (
	InsertOp OpType = iota
	DeleteOp
)

// Operation captures a single edit for undo/redo.
// Pos is a rune index; Text is the inserted/deleted text.
type Operation struct {
	Type OpType
	Pos  int
	Text string
}

func (op Operation) end() int { return op.Pos + len([]rune(op.Text)) }

func (op Operation) apply(s Storage) error {
	switch op.Type {
	case InsertOp:
		return s.Insert(op.Pos, []rune(op.Text))
	case DeleteOp:
		return s.Delete(op.Pos, op.end())
	default:
		return fmt.Errorf("unknown op type %d", op.Type)
	}
}

func (op Operation) invert() Operation {
	if op.Type == InsertOp {
		op.Type = DeleteOp
	} else {
		op.Type = InsertOp
	}
	return op
}

// Entry is one undo step: the operations in the order they were applied and
// the caret positions around them (primary first).
type Entry struct {
	Ops    []Operation
	Before []int
	After  []int
}

// History keeps stacks of past/future entries for undo/redo.
type History struct {
	past   []Entry
	future []Entry
	open   *Entry
	depth  int
}

// New creates an empty History.
func New() *History { return &History{} }

// Begin opens a group: every operation recorded until the matching End
// undoes as one step. Groups nest; only the outermost one counts.
func (h *History) Begin(carets []int) {
	h.depth++
	if h.depth == 1 {
		h.open = &Entry{Before: clone(carets)}
	}
}

// End closes the group opened by Begin. Empty groups are discarded.
func (h *History) End(carets []int) {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	e := h.open
	h.open = nil
	if len(e.Ops) == 0 {
		return
	}
	e.After = clone(carets)
	h.push(*e)
}

// RecordInsert records an insertion at pos.
func (h *History) RecordInsert(pos int, text string) {
	h.record(Operation{Type: InsertOp, Pos: pos, Text: text})
}

// RecordDelete records a deletion at pos of the given text.
func (h *History) RecordDelete(pos int, text string) {
	h.record(Operation{Type: DeleteOp, Pos: pos, Text: text})
}

func (h *History) record(op Operation) {
	if op.Text == "" {
		return
	}
	if h.open != nil {
		h.open.Ops = append(h.open.Ops, op)
		return
	}
	h.push(Entry{Ops: []Operation{op}})
}

func (h *History) push(e Entry) {
	h.past = append(h.past, e)
	h.future = nil
}

// CanUndo reports whether there is an entry to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is an entry to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Undo reverts the last entry on s and returns it.
func (h *History) Undo(s Storage) (Entry, error) {
	if !h.CanUndo() {
		return Entry{}, ErrNothingToUndo
	}
	e := h.past[len(h.past)-1]
	for i := len(e.Ops) - 1; i >= 0; i-- {
		if err := e.Ops[i].invert().apply(s); err != nil {
			return Entry{}, fmt.Errorf("undo: %w", err)
		}
	}
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, e)
	return e, nil
}

// Redo reapplies the next entry on s and returns it.
func (h *History) Redo(s Storage) (Entry, error) {
	if !h.CanRedo() {
		return Entry{}, ErrNothingToRedo
	}
	e := h.future[len(h.future)-1]
	for _, op := range e.Ops {
		if err := op.apply(s); err != nil {
			return Entry{}, fmt.Errorf("redo: %w", err)
		}
	}
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, e)
	return e, nil
}

// Reset drops all entries.
func (h *History) Reset() {
	h.past, h.future, h.open, h.depth = nil, nil, nil, 0
}

func clone(v []int) []int {
	if v == nil {
		return nil
	}
	return append([]int(nil), v...)
}
