package highlight

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"example.com/editerako/pkg/grammar"
	"example.com/editerako/pkg/logs"
)

// Handle identifies a document attached to an Engine.
type Handle uuid.UUID

func (h Handle) String() string { return uuid.UUID(h).String() }

// Engine keeps one Session per attached document. The registry is safe for
// concurrent use; each Session is driven by a single caller at a time.
type Engine struct {
	mu       sync.Mutex
	sessions map[Handle]*Session
	opts     []Option
}

// NewEngine returns an engine whose sessions use opts unless Attach
// overrides them.
func NewEngine(opts ...Option) *Engine {
	return &Engine{sessions: make(map[Handle]*Session), opts: opts}
}

// Attach starts highlighting a document and returns its handle. The first
// pass runs before Attach returns.
func (e *Engine) Attach(ctx context.Context, text string, kind grammar.Kind, opts ...Option) (Handle, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Handle{}, err
	}
	h := Handle(id)
	all := make([]Option, 0, len(e.opts)+len(opts))
	all = append(all, e.opts...)
	all = append(all, opts...)
	s := NewSession(ctx, kind, text, all...)

	e.mu.Lock()
	e.sessions[h] = s
	e.mu.Unlock()

	logs.FromContext(ctx).Debug("highlight attach", "handle", h.String(), "kind", kind.String(), "bytes", len(text))
	return h, nil
}

// OnBlockChanged re-highlights the document behind h.
func (e *Engine) OnBlockChanged(ctx context.Context, h Handle, text string) ([]Range, error) {
	s, err := e.Session(h)
	if err != nil {
		return nil, err
	}
	return s.OnBlockChanged(ctx, text), nil
}

// Detach stops highlighting the document behind h and releases its parser.
func (e *Engine) Detach(h Handle) error {
	e.mu.Lock()
	s, ok := e.sessions[h]
	delete(e.sessions, h)
	e.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}
	s.Close()
	return nil
}

// Session returns the session behind h.
func (e *Engine) Session(h Handle) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[h]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// Len returns the number of attached documents.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// Close detaches every document.
func (e *Engine) Close() {
	e.mu.Lock()
	sessions := e.sessions
	e.sessions = make(map[Handle]*Session)
	e.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
