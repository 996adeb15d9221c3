package buffer

import "unicode"

// IsWordRune reports whether r can be part of an identifier or keyword:
// a letter, a digit or '_'.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// runes is the read side of a text: GapBuffer satisfies it.
type runes interface {
	Len() int
	RuneAt(i int) rune
}

// skip advances from pos in direction dir while the neighbouring rune's
// word-ness equals word. For dir < 0 the neighbour is the rune before pos.
func skip(t runes, pos, dir int, word bool) int {
	for {
		i := pos
		if dir < 0 {
			i--
		}
		if i < 0 || i >= t.Len() || IsWordRune(t.RuneAt(i)) != word {
			return pos
		}
		pos += dir
	}
}

// WordStart returns the start of the word before pos, skipping any
// non-word runes in between.
func WordStart(g *GapBuffer, pos int) int {
	if g == nil {
		return 0
	}
	pos = max(0, min(pos, g.Len()))
	pos = skip(g, pos, -1, false)
	return skip(g, pos, -1, true)
}

// NextWordStart returns the start of the word after the one under pos.
// At the last word it returns Len().
func NextWordStart(g *GapBuffer, pos int) int {
	if g == nil {
		return 0
	}
	pos = max(0, min(pos, g.Len()))
	pos = skip(g, pos, 1, true)
	return skip(g, pos, 1, false)
}
