package app

import (
	"github.com/gdamore/tcell/v2"

	"example.com/editerako/pkg/highlight"
)

// attach starts a highlight session for the current document, replacing any
// previous one. The session feeds r.styles.
func (r *Runner) attach() {
	r.detach()
	if r.Engine == nil {
		return
	}
	h, err := r.Engine.Attach(r.context(), r.Doc.Text(), r.Kind, highlight.WithApplier(&r.styles))
	if err != nil {
		r.Logger.Error("highlight attach failed", "error", err)
		return
	}
	r.handle = h
	r.attached = true
}

func (r *Runner) detach() {
	if !r.attached {
		return
	}
	r.attached = false
	if err := r.Engine.Detach(r.handle); err != nil {
		r.Logger.Warn("highlight detach", "error", err)
	}
}

// rehighlight runs after every edit. The session reports ranges through
// r.styles, so the result itself is not needed here.
func (r *Runner) rehighlight() {
	if !r.attached {
		r.attach()
		return
	}
	if _, err := r.Engine.OnBlockChanged(r.context(), r.handle, r.Doc.Text()); err != nil {
		r.Logger.Warn("highlight", "error", err)
	}
}

// styleAt returns the style of rune i of the document on top of base.
func (r *Runner) styleAt(i int, base tcell.Style) tcell.Style {
	c := r.styles.At(i)
	if c == highlight.PlainText {
		return base
	}
	if s, ok := r.Theme.Styles[c]; ok {
		return s.Tcell(base)
	}
	return base
}
