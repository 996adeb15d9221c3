package app

import "example.com/editerako/pkg/buffer"

// lineCol returns the 0-based line and column (in runes) of pos.
func lineCol(b *buffer.GapBuffer, pos int) (line, col int) {
	pos = max(0, min(pos, b.Len()))
	line = b.LineOf(pos)
	start, _ := b.LineAt(line)
	return line, pos - start
}

// posFor returns the offset of (line, col), clamping col to the line's
// length and line to the last line.
func posFor(b *buffer.GapBuffer, line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= b.LineCount() {
		return b.Len()
	}
	start, end := b.LineAt(line)
	if end > start && b.RuneAt(end-1) == '\n' {
		end--
	}
	return start + max(0, min(col, end-start))
}

func lineCount(b *buffer.GapBuffer) int { return b.LineCount() }

// lineStart returns the offset of the first rune of pos's line.
func lineStart(b *buffer.GapBuffer, pos int) int {
	start, _ := b.LineAt(b.LineOf(pos))
	return start
}

// lineEnd returns the offset of the newline ending pos's line, or the end
// of the text.
func lineEnd(b *buffer.GapBuffer, pos int) int {
	start, end := b.LineAt(b.LineOf(pos))
	if end > start && b.RuneAt(end-1) == '\n' {
		end--
	}
	return end
}
