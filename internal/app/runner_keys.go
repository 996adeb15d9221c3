package app

import (
	"github.com/gdamore/tcell/v2"

	"example.com/editerako/pkg/buffer"
)

func (r *Runner) bound(name string, ev *tcell.EventKey) bool {
	kb, ok := r.Keymap[name]
	return ok && kb.Matches(ev)
}

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	r.clearMiniBuffer()
	switch {
	case r.bound("quit", ev):
		return true
	case r.bound("save", ev):
		if err := r.Save(); err != nil {
			r.setMiniBuffer([]string{"save failed: " + err.Error()})
		} else {
			r.setMiniBuffer([]string{"saved " + r.FilePath})
		}
		return false
	case r.bound("undo", ev):
		r.edited(r.Doc.Undo())
		return false
	case r.bound("redo", ev):
		r.edited(r.Doc.Redo())
		return false
	case r.bound("swap_up", ev):
		r.swapped(r.Doc.SwapLineUp())
		return false
	case r.bound("swap_down", ev):
		r.swapped(r.Doc.SwapLineDown())
		return false
	case r.bound("word_prev", ev):
		r.Doc.MoveTo(buffer.WordStart(r.Doc.Buffer(), r.Doc.Primary()))
		return false
	case r.bound("word_next", ev):
		r.Doc.MoveTo(buffer.NextWordStart(r.Doc.Buffer(), r.Doc.Primary()))
		return false
	case r.bound("clear", ev):
		r.Doc.ClearSecondaries()
		return false
	case r.bound("next_doc", ev):
		r.cycleDocument(true)
		return false
	case r.bound("prev_doc", ev):
		r.cycleDocument(false)
		return false
	case r.bound("close_doc", ev):
		if err := r.closeDocument(); err != nil {
			r.setMiniBuffer([]string{err.Error()})
		}
		return false
	}

	b := r.Doc.Buffer()
	pos := r.Doc.Primary()
	switch ev.Key() {
	case tcell.KeyF1:
		r.ShowHelp = true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			r.edited(r.Doc.Insert(string(ev.Rune())))
		}
	case tcell.KeyEnter:
		r.edited(r.Doc.Insert("\n"))
	case tcell.KeyTab:
		r.edited(r.Doc.Insert("\t"))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		r.edited(r.Doc.Delete(true))
	case tcell.KeyDelete:
		r.edited(r.Doc.Delete(false))
	case tcell.KeyLeft:
		r.Doc.MoveTo(pos - 1)
	case tcell.KeyRight:
		r.Doc.MoveTo(pos + 1)
	case tcell.KeyUp, tcell.KeyDown:
		line, col := lineCol(b, pos)
		if ev.Key() == tcell.KeyUp {
			if line == 0 {
				break
			}
			line--
		} else {
			if line >= lineCount(b)-1 {
				break
			}
			line++
		}
		r.Doc.MoveTo(posFor(b, line, col))
	case tcell.KeyHome:
		r.Doc.MoveTo(lineStart(b, pos))
	case tcell.KeyEnd:
		r.Doc.MoveTo(lineEnd(b, pos))
	}
	return false
}

// edited finishes a text change: marks the document dirty and
// re-highlights it.
func (r *Runner) edited(err error) {
	if err != nil {
		r.setMiniBuffer([]string{err.Error()})
		return
	}
	r.Dirty = true
	r.rehighlight()
}

// swapped is edited for line swaps, which leave a boundary line untouched.
func (r *Runner) swapped(changed bool, err error) {
	if err == nil && !changed {
		return
	}
	r.edited(err)
}

// handleMouseEvent moves the caret on a primary-button press. With Ctrl
// held the press toggles a secondary caret instead.
func (r *Runner) handleMouseEvent(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	if !pressed {
		r.mouseDown = false
		return
	}
	if r.mouseDown {
		return
	}
	r.mouseDown = true
	x, y := ev.Position()
	pos, ok := r.offsetAt(x, y)
	if !ok {
		return
	}
	r.Doc.Click(pos, ev.Modifiers()&tcell.ModCtrl != 0)
}

// offsetAt maps a screen cell inside the text area to a document offset.
func (r *Runner) offsetAt(x, y int) (int, bool) {
	if r.Screen == nil {
		return 0, false
	}
	_, height := r.Screen.Size()
	if y < 0 || y >= r.textHeight(height) {
		return 0, false
	}
	col := x - r.gutterWidth()
	if col < 0 {
		col = 0
	}
	b := r.Doc.Buffer()
	line := r.TopLine + y
	if line >= lineCount(b) {
		return b.Len(), true
	}
	return posFor(b, line, col), true
}
