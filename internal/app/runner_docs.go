package app

import (
	"errors"
	"fmt"
	"io/fs"

	"example.com/editerako/pkg/buffer"
	"example.com/editerako/pkg/editor"
	"example.com/editerako/pkg/grammar"
)

// document snapshots the focused document.
func (r *Runner) document() editor.Document {
	return editor.Document{
		FilePath: r.FilePath,
		Doc:      r.Doc,
		Kind:     r.Kind,
		Dirty:    r.Dirty,
		TopLine:  r.TopLine,
		Handle:   r.handle,
		Attached: r.attached,
	}
}

// stash writes the focused document back into Docs.
func (r *Runner) stash() {
	if r.Docs != nil {
		r.Docs.UpdateCurrent(r.document())
	}
}

// focus makes d the visible document and refreshes the styles from its
// session.
func (r *Runner) focus(d editor.Document) {
	r.FilePath = d.FilePath
	r.Doc = d.Doc
	r.Kind = d.Kind
	r.Dirty = d.Dirty
	r.TopLine = d.TopLine
	r.handle = d.Handle
	r.attached = d.Attached
	r.rehighlight()
	r.stash()
}

// OpenFile opens path in its own document and focuses it. A file that is
// already open is focused instead; a missing file starts empty and is
// created on save. An untouched scratch document is replaced.
func (r *Runner) OpenFile(path string) error {
	if path == "" {
		return nil
	}
	r.stash()
	if i, ok := r.Docs.Find(path); ok {
		r.Docs.Current = i
		r.focus(r.Docs.CurrentDocument())
		return nil
	}
	r.Logger.Event("open.attempt", map[string]any{"file": path})
	d, err := editor.ReadDocument(path, r.Languages)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind, _ := grammar.DetectKind(r.Languages, path)
		d = editor.Document{FilePath: path, Doc: buffer.NewMultiCursor(""), Kind: kind}
	case err != nil:
		r.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return err
	}

	if cur := r.Docs.CurrentDocument(); cur.FilePath == "" && !cur.Dirty && cur.Doc != nil && cur.Doc.Len() == 0 {
		r.detach()
		r.Docs.RemoveCurrent()
	}
	r.Docs.Add(d)
	r.focus(d)
	r.Logger.Event("open.success", map[string]any{"file": path, "runes": r.Doc.Len(), "kind": r.Kind.String()})
	return nil
}

// cycleDocument focuses the next or previous document.
func (r *Runner) cycleDocument(forward bool) {
	if r.Docs.Len() < 2 {
		return
	}
	r.stash()
	if forward {
		r.focus(r.Docs.Next())
	} else {
		r.focus(r.Docs.Prev())
	}
}

// closeDocument closes the focused document unless it has unsaved
// changes. Closing the last one leaves an empty scratch document.
func (r *Runner) closeDocument() error {
	if r.Dirty {
		return fmt.Errorf("%s has unsaved changes", r.document().Name())
	}
	r.detach()
	r.stash()
	r.Docs.RemoveCurrent()
	if r.Docs.Len() == 0 {
		r.Docs.Add(editor.Document{Doc: buffer.NewMultiCursor("")})
	}
	r.focus(r.Docs.CurrentDocument())
	return nil
}
