package highlight

import (
	"sort"
	"unicode/utf8"
)

// unit is a run of source bytes that does not map one-to-one onto a
// character: a multi-byte rune, or a single undecodable byte.
type unit struct {
	start int
	size  int
	valid bool
}

// Translator converts between byte offsets into a UTF-8 source and character
// (code point) offsets. A character is counted only once all of its bytes
// precede the offset; undecodable bytes count as no character.
type Translator struct {
	n     int
	units []unit
	// lost[i] is the number of bytes among units[0..i] that do not yield a
	// character of their own.
	lost []int
}

// NewTranslator indexes src. Pure ASCII input produces an identity translator.
func NewTranslator(src []byte) *Translator {
	t := &Translator{n: len(src)}
	lost := 0
	for i := 0; i < len(src); {
		if src[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(src[i:])
		u := unit{start: i, size: size, valid: !(r == utf8.RuneError && size == 1)}
		if u.valid {
			lost += size - 1
		} else {
			lost++
		}
		t.units = append(t.units, u)
		t.lost = append(t.lost, lost)
		i += size
	}
	return t
}

// Identity reports whether byte and character offsets coincide for the
// whole source.
func (t *Translator) Identity() bool { return len(t.units) == 0 }

// CharOffset returns the number of characters decoded from src[:off].
// Offsets outside [0, len(src)] are clamped.
func (t *Translator) CharOffset(off int) int {
	if off <= 0 {
		return 0
	}
	if off > t.n {
		off = t.n
	}
	if len(t.units) == 0 {
		return off
	}
	// units starting before off
	i := sort.Search(len(t.units), func(i int) bool { return t.units[i].start >= off })
	if i == 0 {
		return off
	}
	u := t.units[i-1]
	if u.start+u.size <= off {
		return off - t.lost[i-1]
	}
	// off splits a multi-byte rune: its leading bytes decode to nothing.
	before := 0
	if i >= 2 {
		before = t.lost[i-2]
	}
	return u.start - before
}

// ByteOffset returns the smallest byte offset whose prefix decodes to char
// characters. Values past the end map to len(src).
func (t *Translator) ByteOffset(char int) int {
	if char <= 0 {
		return 0
	}
	if len(t.units) == 0 {
		if char > t.n {
			return t.n
		}
		return char
	}
	if char > t.Len() {
		return t.n
	}
	return sort.Search(t.n+1, func(b int) bool { return t.CharOffset(b) >= char })
}

// Len returns the number of characters in the whole source.
func (t *Translator) Len() int { return t.CharOffset(t.n) }

// Range converts a byte range to character space. ok is false when the
// range covers no whole character.
func (t *Translator) Range(br ByteRange) (r Range, ok bool) {
	start := t.CharOffset(br.Start)
	end := t.CharOffset(br.End)
	if end <= start {
		return Range{}, false
	}
	return Range{Start: start, Length: end - start, Category: br.Category}, true
}

// Ranges converts every byte range, dropping the ones that collapse to
// nothing. Order is preserved.
func (t *Translator) Ranges(in []ByteRange) []Range {
	out := make([]Range, 0, len(in))
	for _, br := range in {
		if r, ok := t.Range(br); ok {
			out = append(out, r)
		}
	}
	return out
}

// CharOffset is a convenience wrapper that decodes src[:off] directly.
func CharOffset(src []byte, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(src) {
		off = len(src)
	}
	n := 0
	for p := src[:off]; len(p) > 0; {
		r, size := utf8.DecodeRune(p)
		if !(r == utf8.RuneError && size == 1) {
			n++
		}
		p = p[size:]
	}
	return n
}
