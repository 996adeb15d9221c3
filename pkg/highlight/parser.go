package highlight

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// incrementalParser owns a tree-sitter parser and the most recent tree for
// one document. Each parse after the first edits the previous tree with the
// changed region and hands it back to tree-sitter for reuse.
type incrementalParser struct {
	parser *sitter.Parser
	tree   *sitter.Tree
	src    []byte
}

func newIncrementalParser(lang *sitter.Language) *incrementalParser {
	p := sitter.NewParser()
	p.SetLanguage(lang)
	return &incrementalParser{parser: p}
}

// parse brings the tree up to date with text. Unchanged text returns the
// current tree without reparsing. reused reports whether the previous tree
// took part. A failed parse drops the previous tree, so the next call starts
// from scratch.
func (p *incrementalParser) parse(ctx context.Context, text []byte) (tree *sitter.Tree, reused bool, err error) {
	if p.parser == nil {
		return nil, false, ErrClosed
	}
	old := p.tree
	if old != nil && bytes.Equal(p.src, text) {
		return old, true, nil
	}
	if old != nil {
		old.Edit(editBetween(p.src, text))
	}
	src := bytes.Clone(text)
	tree, err = p.parser.ParseCtx(ctx, old, src)
	if err != nil || tree == nil {
		p.parser.Reset()
		if old != nil {
			// The edit was applied to old; it no longer matches p.src.
			old.Close()
			p.tree, p.src = nil, nil
		}
		if err == nil {
			err = errNoTree
		}
		return nil, false, fmt.Errorf("parse: %w", err)
	}
	if old != nil {
		old.Close()
	}
	p.tree, p.src = tree, src
	return tree, old != nil, nil
}

// reset drops the retained tree so the next parse starts from scratch.
func (p *incrementalParser) reset() {
	if p.tree != nil {
		p.tree.Close()
	}
	p.tree, p.src = nil, nil
}

func (p *incrementalParser) close() {
	p.reset()
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// editBetween describes the change from prev to next as a single replaced
// region bounded by their longest common prefix and suffix.
func editBetween(prev, next []byte) sitter.EditInput {
	n := min(len(prev), len(next))
	start := 0
	for start < n && prev[start] == next[start] {
		start++
	}
	suffix := 0
	for suffix < n-start && prev[len(prev)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}
	oldEnd := len(prev) - suffix
	newEnd := len(next) - suffix
	return sitter.EditInput{
		StartIndex:  uint32(start),
		OldEndIndex: uint32(oldEnd),
		NewEndIndex: uint32(newEnd),
		StartPoint:  pointAt(prev, start),
		OldEndPoint: pointAt(prev, oldEnd),
		NewEndPoint: pointAt(next, newEnd),
	}
}

// pointAt returns the row and byte column of off in src.
func pointAt(src []byte, off int) sitter.Point {
	prefix := src[:off]
	row := bytes.Count(prefix, []byte{'\n'})
	col := off
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		col = off - i - 1
	}
	return sitter.Point{Row: uint32(row), Column: uint32(col)}
}
