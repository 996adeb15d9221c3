// Package highlight maintains a concrete syntax tree per open document and
// turns it into character-space highlight ranges on every edit.
//
// A Session is single-threaded: the host calls OnBlockChanged from its event
// loop and receives the ranges synchronously. Sessions never share parser or
// tree state.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"example.com/editerako/pkg/grammar"
	"example.com/editerako/pkg/logs"
)

var (
	// ErrClosed is returned when a closed session is used.
	ErrClosed = errors.New("highlight: session closed")
	// ErrUnknownSession is returned for a handle the engine does not know.
	ErrUnknownSession = errors.New("highlight: unknown session")

	errNoTree = errors.New("parser returned no tree")
)

// DriverState is the phase of a highlight pass.
type DriverState int

const (
	Idle DriverState = iota
	Parsing
	Classifying
	Applying
)

func (s DriverState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Parsing:
		return "parsing"
	case Classifying:
		return "classifying"
	case Applying:
		return "applying"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Applier receives the formatting of a pass. Reset clears every override of
// a text of length characters; SetFormat then overrides one span. Calls for
// one pass happen on one call stack, in range order.
type Applier interface {
	Reset(length int)
	SetFormat(start, length int, c Category)
}

// Options configures a Session.
type Options struct {
	// Provider supplies grammars. Default: grammar.Default().
	Provider grammar.Provider
	// Classify tunes the classifier.
	Classify ClassifyOptions
	// ParseTimeout bounds a single parse. Zero means no bound.
	ParseTimeout time.Duration
	// MaxBytes disables highlighting for larger texts. Zero means no limit.
	MaxBytes int
	// Applier, when set, is fed every pass.
	Applier Applier
}

// Option is a functional option for configuring a Session.
type Option func(*Options)

// WithProvider sets the grammar provider.
func WithProvider(p grammar.Provider) Option {
	return func(o *Options) { o.Provider = p }
}

// WithClassifyOptions sets the classifier options.
func WithClassifyOptions(c ClassifyOptions) Option {
	return func(o *Options) { o.Classify = c }
}

// WithParseTimeout bounds each parse.
func WithParseTimeout(d time.Duration) Option {
	return func(o *Options) { o.ParseTimeout = d }
}

// WithMaxBytes sets the size above which no highlighting is produced.
func WithMaxBytes(n int) Option {
	return func(o *Options) { o.MaxBytes = n }
}

// WithApplier installs the host formatting sink.
func WithApplier(a Applier) Option {
	return func(o *Options) { o.Applier = a }
}

// Session is the highlight state of one open document.
type Session struct {
	kind   grammar.Kind
	opts   Options
	parser *incrementalParser
	// disabled holds the grammar load error, if any.
	disabled error
	state    DriverState
	ranges   []Range
	pending  *string
	closed   bool
}

// NewSession creates a session for kind and highlights text. A grammar that
// fails to load leaves the session disabled: it returns no ranges.
func NewSession(ctx context.Context, kind grammar.Kind, text string, opts ...Option) *Session {
	o := Options{Provider: grammar.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{kind: kind, opts: o}
	lg := logs.FromContext(ctx)
	lang, err := o.Provider.Language(kind)
	if err == nil && rulesFor(kind) == nil {
		err = fmt.Errorf("%w: %s", grammar.ErrUnsupportedKind, kind)
	}
	if err != nil {
		s.disabled = err
		lg.Warn("highlight disabled", "kind", kind.String(), "error", err)
	} else {
		s.parser = newIncrementalParser(lang)
	}
	s.OnBlockChanged(ctx, text)
	return s
}

// Kind returns the language kind the session was created with.
func (s *Session) Kind() grammar.Kind { return s.kind }

// Disabled returns the grammar error that disabled the session, or nil.
func (s *Session) Disabled() error { return s.disabled }

// State returns the driver phase.
func (s *Session) State() DriverState { return s.state }

// Ranges returns a copy of the ranges of the last completed pass.
func (s *Session) Ranges() []Range {
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// OnBlockChanged re-highlights text, the current content of the document,
// and returns the ranges in application order. A call made while a pass is
// running (for example from the Applier) is queued: it returns nil and its
// text is highlighted before the outer call returns. Only the newest queued
// text is kept.
func (s *Session) OnBlockChanged(ctx context.Context, text string) []Range {
	if s.closed {
		return nil
	}
	if s.state != Idle {
		s.pending = &text
		return nil
	}
	ranges := s.pass(ctx, text)
	for s.pending != nil && !s.closed {
		next := *s.pending
		s.pending = nil
		ranges = s.pass(ctx, next)
	}
	return ranges
}

func (s *Session) pass(ctx context.Context, text string) []Range {
	defer func() { s.state = Idle }()
	begin := time.Now()
	src := []byte(text)
	ctx, span := startPassSpan(ctx, s.kind, len(src))
	defer span.End()

	if s.parser == nil || (s.opts.MaxBytes > 0 && len(src) > s.opts.MaxBytes) {
		s.commit(nil, NewTranslator(src).Len())
		return nil
	}

	s.state = Parsing
	pctx := ctx
	if s.opts.ParseTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, s.opts.ParseTimeout)
		defer cancel()
	}
	tree, reused, err := s.parser.parse(pctx, src)
	if err != nil {
		logs.FromContext(ctx).Warn("highlight parse failed", "kind", s.kind.String(), "bytes", len(src), "error", err)
		recordPass(ctx, s.kind, time.Since(begin), 0, false, false)
		span.RecordError(err)
		s.commit(nil, NewTranslator(src).Len())
		return nil
	}

	s.state = Classifying
	byteRanges := Classify(s.kind, tree.RootNode(), src, s.opts.Classify)
	tr := NewTranslator(src)
	ranges := tr.Ranges(byteRanges)

	s.commit(ranges, tr.Len())
	recordPass(ctx, s.kind, time.Since(begin), len(ranges), reused, true)
	setPassSpanResult(span, len(ranges), reused)
	return ranges
}

// commit replaces the committed ranges and feeds the applier.
func (s *Session) commit(ranges []Range, length int) {
	s.state = Applying
	s.ranges = ranges
	if a := s.opts.Applier; a != nil {
		a.Reset(length)
		for _, r := range ranges {
			a.SetFormat(r.Start, r.Length, r.Category)
		}
	}
}

// Invalidate forgets the retained tree; the next pass parses from scratch.
func (s *Session) Invalidate() {
	if s.parser != nil {
		s.parser.reset()
	}
}

// Close releases the parser and tree. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.pending = nil
	if s.parser != nil {
		s.parser.close()
		s.parser = nil
	}
	s.ranges = nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// hasTree reports whether the session retains a syntax tree.
func (s *Session) hasTree() bool { return s.parser != nil && s.parser.tree != nil }
