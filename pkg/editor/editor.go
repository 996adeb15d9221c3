// Package editor tracks the documents open in one editor window.
package editor

import (
	"os"
	"path/filepath"
	"strings"

	"example.com/editerako/pkg/buffer"
	"example.com/editerako/pkg/grammar"
	"example.com/editerako/pkg/highlight"
)

// Document holds the state of one open document, including the highlight
// session attached to it.
type Document struct {
	FilePath string
	Doc      *buffer.MultiCursor
	Kind     grammar.Kind
	Dirty    bool
	TopLine  int

	Handle   highlight.Handle
	Attached bool
}

// Name is the base name of the file, or "[No File]".
func (d Document) Name() string {
	if d.FilePath == "" {
		return "[No File]"
	}
	return filepath.Base(d.FilePath)
}

// Editor manages open documents and the focused index.
type Editor struct {
	Docs    []Document
	Current int
}

// New creates an empty Editor.
func New() *Editor {
	return &Editor{}
}

// Len returns the number of open documents.
func (e *Editor) Len() int { return len(e.Docs) }

// Add appends a document and focuses it.
func (e *Editor) Add(d Document) {
	e.Docs = append(e.Docs, d)
	e.Current = len(e.Docs) - 1
}

// UpdateCurrent stores d into the focused slot.
func (e *Editor) UpdateCurrent(d Document) {
	if e.Current >= 0 && e.Current < len(e.Docs) {
		e.Docs[e.Current] = d
	}
}

// CurrentDocument returns the focused document.
func (e *Editor) CurrentDocument() Document {
	if e.Current >= 0 && e.Current < len(e.Docs) {
		return e.Docs[e.Current]
	}
	return Document{}
}

// Next focuses the following document, wrapping around.
func (e *Editor) Next() Document {
	if len(e.Docs) == 0 {
		return Document{}
	}
	e.Current = (e.Current + 1) % len(e.Docs)
	return e.Docs[e.Current]
}

// Prev focuses the preceding document, wrapping around.
func (e *Editor) Prev() Document {
	if len(e.Docs) == 0 {
		return Document{}
	}
	e.Current = (e.Current - 1 + len(e.Docs)) % len(e.Docs)
	return e.Docs[e.Current]
}

// RemoveCurrent drops the focused document and focuses its predecessor.
// It returns the removed document.
func (e *Editor) RemoveCurrent() (Document, bool) {
	if e.Current < 0 || e.Current >= len(e.Docs) {
		return Document{}, false
	}
	d := e.Docs[e.Current]
	e.Docs = append(e.Docs[:e.Current], e.Docs[e.Current+1:]...)
	if e.Current > 0 {
		e.Current--
	}
	return d, true
}

// Find returns the index of the document open at path.
func (e *Editor) Find(path string) (int, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for i, d := range e.Docs {
		if d.FilePath == "" {
			continue
		}
		other, err := filepath.Abs(d.FilePath)
		if err != nil {
			other = d.FilePath
		}
		if other == abs {
			return i, true
		}
	}
	return 0, false
}

// ReadDocument reads a file into a new, unattached Document. CRLF line
// endings are stored as LF.
func ReadDocument(path string, languages *grammar.LanguageConfig) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	kind, _ := grammar.DetectKind(languages, path)
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	return Document{
		FilePath: path,
		Doc:      buffer.NewMultiCursor(normalized),
		Kind:     kind,
	}, nil
}
