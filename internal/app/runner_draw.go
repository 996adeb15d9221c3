package app

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

var helpLines = []string{
	"Help:",
	"- F1: Show this help",
	"- Ctrl+Q: Quit",
	"- Ctrl+S: Save",
	"- Ctrl+Z / Ctrl+Y: Undo / Redo",
	"- Ctrl+Up / Ctrl+Down: Swap line up / down",
	"- Ctrl+Left / Ctrl+Right: Previous / next word",
	"- Ctrl+N / Ctrl+P: Next / previous document",
	"- Ctrl+W: Close document",
	"- Ctrl+Click: Add or remove an extra caret",
	"- Click or Esc: Back to a single caret",
	"- Typing, Enter, Backspace, Delete: edit at every caret",
}

func drawHelp(s tcell.Screen) {
	width, height := s.Size()
	s.Clear()
	s.SetStyle(tcell.StyleDefault)
	y := (height - len(helpLines)) / 2
	for i, line := range helpLines {
		x := (width - len(line)) / 2
		drawString(s, x, y+i, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	s.Show()
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// gutterWidth is the width of the line-number column including its
// separating space.
func (r *Runner) gutterWidth() int {
	return len(strconv.Itoa(lineCount(r.Doc.Buffer()))) + 1
}

// textHeight is the number of screen rows showing the document.
func (r *Runner) textHeight(height int) int {
	return max(0, height-1-len(r.MiniBuf))
}

// ensureCursorVisible scrolls so the primary caret's line is on screen.
func (r *Runner) ensureCursorVisible(rows int) {
	if rows <= 0 {
		return
	}
	line, _ := lineCol(r.Doc.Buffer(), r.Doc.Primary())
	if line < r.TopLine {
		r.TopLine = line
	}
	if line >= r.TopLine+rows {
		r.TopLine = line - rows + 1
	}
}

// draw renders the document, carets, status bar and mini-buffer.
func (r *Runner) draw() {
	s := r.Screen
	if s == nil {
		return
	}
	if r.ShowHelp {
		drawHelp(s)
		return
	}
	width, height := s.Size()
	rows := r.textHeight(height)
	r.ensureCursorVisible(rows)

	th := r.Theme
	base := tcell.StyleDefault.Foreground(th.UIForeground).Background(th.UIBackground)
	gutter := base.Foreground(th.LineNumber)
	primary := tcell.StyleDefault.Foreground(th.CursorText).Background(th.CursorBG)
	secondary := tcell.StyleDefault.Foreground(th.CursorText).Background(th.SecondaryCursorBG)
	s.SetStyle(base)
	s.Clear()

	b := r.Doc.Buffer()
	secondaries := r.Doc.Secondaries()
	caret := r.Doc.Primary()
	gw := r.gutterWidth()
	pos := posFor(b, r.TopLine, 0)
	for y := 0; y < rows; y++ {
		line := r.TopLine + y
		if line >= lineCount(b) {
			break
		}
		num := strconv.Itoa(line + 1)
		drawString(s, gw-1-len(num), y, num, gutter)
		x := gw
		for ; pos < b.Len() && b.RuneAt(pos) != '\n'; pos++ {
			ch := b.RuneAt(pos)
			st := r.styleAt(pos, base)
			switch {
			case pos == caret:
				st = primary
			case isCaret(secondaries, pos):
				st = secondary
			}
			if ch == '\t' {
				ch = ' '
			}
			if x < width {
				s.SetContent(x, y, ch, nil, st)
			}
			x++
		}
		// caret after the last rune of the line
		if x < width {
			switch {
			case pos == caret:
				s.SetContent(x, y, ' ', nil, primary)
			case isCaret(secondaries, pos):
				s.SetContent(x, y, ' ', nil, secondary)
			}
		}
		pos++ // newline
	}

	for i, line := range r.MiniBuf {
		y := height - 1 - len(r.MiniBuf) + i
		fillRow(s, y, width, line, base.Reverse(true))
	}
	fillRow(s, height-1, width, r.statusLine(), tcell.StyleDefault.Foreground(th.StatusForeground).Background(th.StatusBackground))
	s.Show()
}

func isCaret(sorted []int, pos int) bool {
	_, found := slices.BinarySearch(sorted, pos)
	return found
}

func fillRow(s tcell.Screen, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		s.SetContent(x, y, ch, nil, style)
	}
}

func (r *Runner) statusLine() string {
	name := r.FilePath
	if name == "" {
		name = "[No File]"
	}
	if r.Dirty {
		name += " [+]"
	}
	line, col := lineCol(r.Doc.Buffer(), r.Doc.Primary())
	status := fmt.Sprintf("%s  %s  %d:%d", name, r.Kind, line+1, col+1)
	if n := len(r.Doc.Secondaries()); n > 0 {
		status += fmt.Sprintf("  %d carets", n+1)
	}
	if n := r.Docs.Len(); n > 1 {
		status += fmt.Sprintf("  [%d/%d]", r.Docs.Current+1, n)
	}
	return status + "  F1 help"
}
