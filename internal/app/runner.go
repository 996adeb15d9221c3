package app

import (
	"context"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"example.com/editerako/pkg/buffer"
	"example.com/editerako/pkg/config"
	"example.com/editerako/pkg/editor"
	"example.com/editerako/pkg/grammar"
	"example.com/editerako/pkg/highlight"
	"example.com/editerako/pkg/logs"
)

// Runner owns the terminal lifecycle, the open documents with their
// highlight sessions, and a minimal event loop. The exported document
// fields mirror the focused entry of Docs.
type Runner struct {
	Screen    tcell.Screen
	FilePath  string
	Doc       *buffer.MultiCursor
	Kind      grammar.Kind
	Dirty     bool
	ShowHelp  bool
	TopLine   int
	Logger    *logs.Logger
	MiniBuf   []string
	Keymap    map[string]config.Keybinding
	Theme     config.Theme
	Config    *config.Config
	Languages *grammar.LanguageConfig
	Engine    *highlight.Engine
	Docs      *editor.Editor

	handle    highlight.Handle
	attached  bool
	mouseDown bool
	styles    highlight.Recorder
	ctx       context.Context
}

// New creates a Runner with an empty document. A nil cfg selects the
// defaults.
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Runner{
		Doc:       buffer.NewMultiCursor(""),
		Keymap:    cfg.Keymap,
		Config:    cfg,
		Languages: grammar.DefaultLanguageConfig(),
		Engine:    highlight.NewEngine(cfg.SessionOptions()...),
		Logger:    logs.Discard(),
		Docs:      editor.New(),
	}
	r.Docs.Add(editor.Document{Doc: r.Doc})
	r.applyConfig(cfg)
	return r
}

func (r *Runner) context() context.Context {
	if r.ctx == nil {
		r.ctx = logs.WithLogger(context.Background(), r.Logger)
	}
	return r.ctx
}

func (r *Runner) setMiniBuffer(lines []string) {
	r.MiniBuf = lines
}

func (r *Runner) clearMiniBuffer() {
	r.MiniBuf = nil
}

// applyConfig swaps in a theme and keymap. Highlight options only affect
// documents attached afterwards.
func (r *Runner) applyConfig(cfg *config.Config) {
	th, err := cfg.ResolveTheme()
	if err != nil {
		r.Logger.Warn("theme", "name", cfg.Theme, "error", err)
		r.setMiniBuffer([]string{"config: " + err.Error()})
	}
	r.Theme = th
	r.Keymap = cfg.Keymap
	r.Config = cfg
}

// SetText replaces the document and (re)attaches its highlight session.
func (r *Runner) SetText(text string, kind grammar.Kind) {
	r.Doc.SetText(text)
	r.Kind = kind
	r.Dirty = false
	r.TopLine = 0
	r.attach()
}

// Save writes the buffer contents to the current FilePath and clears Dirty.
func (r *Runner) Save() error {
	if r.FilePath == "" {
		return os.ErrInvalid
	}
	data := []byte(r.Doc.Text())
	if err := os.WriteFile(r.FilePath, data, 0644); err != nil {
		return err
	}
	r.Dirty = false
	r.Logger.Event("save", map[string]any{"file": r.FilePath, "bytes": len(data)})
	return nil
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini releases every highlight session and the screen.
func (r *Runner) Fini() {
	r.stash()
	for i := range r.Docs.Docs {
		d := &r.Docs.Docs[i]
		if d.Attached {
			if err := r.Engine.Detach(d.Handle); err != nil {
				r.Logger.Warn("highlight detach", "file", d.FilePath, "error", err)
			}
			d.Attached = false
		}
	}
	r.attached = false
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// configReload carries a reloaded configuration into the event loop.
type configReload struct {
	cfg *config.Config
	err error
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user requests quit. When configPath is set, changes to
// that file are applied while running.
func (r *Runner) Run(ctx context.Context, configPath string) error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	// Background goroutines post to scr, never to r.Screen, and are joined
	// before Run returns so none outlives the screen.
	scr := r.Screen
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()
	r.ctx = logs.WithLogger(ctx, r.Logger)
	if !r.attached {
		r.attach()
	}
	if configPath != "" {
		wg.Add(1)
		go func(ctx context.Context) {
			defer wg.Done()
			err := config.Watch(ctx, configPath, func(cfg *config.Config, err error) {
				_ = scr.PostEvent(tcell.NewEventInterrupt(configReload{cfg: cfg, err: err}))
			})
			if err != nil {
				r.Logger.Warn("config watch stopped", "error", err)
			}
		}(r.ctx)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		// wake PollEvent so the loop can observe cancellation
		_ = scr.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	r.Logger.Event("run.start", map[string]any{"file": r.FilePath})
	defer r.Logger.Event("run.end", map[string]any{"file": r.FilePath})

	r.draw()
	for {
		ev := scr.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		if r.handleEvent(ev) {
			r.Logger.Event("action", map[string]any{"name": "quit"})
			return nil
		}
		r.draw()
	}
}

// handleEvent dispatches one event and reports whether to quit.
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		r.Logger.Debug("key",
			"key", int(ev.Key()),
			"rune", string(ev.Rune()),
			"modifiers", int(ev.Modifiers()),
		)
		// If help is currently shown, consume this key to dismiss it
		if r.ShowHelp {
			r.ShowHelp = false
			return false
		}
		return r.handleKeyEvent(ev)
	case *tcell.EventMouse:
		r.handleMouseEvent(ev)
	case *tcell.EventResize:
		if r.Screen != nil {
			r.Screen.Sync()
		}
	case *tcell.EventInterrupt:
		if rl, ok := ev.Data().(configReload); ok {
			if rl.err != nil {
				r.setMiniBuffer([]string{"config: " + rl.err.Error()})
				return false
			}
			r.applyConfig(rl.cfg)
		}
	}
	return false
}
