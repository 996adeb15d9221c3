package buffer

import "example.com/editerako/pkg/history"

// TextStorage defines the storage operations the editor view relies on.
// Positions and lengths are expressed in runes (not bytes).
type TextStorage interface {
	history.Storage
	Slice(start, end int) []rune
	Len() int
	LineAt(idx int) (start, end int)
}

var _ TextStorage = (*GapBuffer)(nil)
