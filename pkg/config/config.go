package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"example.com/editerako/pkg/highlight"
)

var (
	ErrInvalidKeybinding = errors.New("invalid keybinding")
	ErrUnknownCategory   = errors.New("unknown highlight category")
)

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// HighlightConfig tunes the highlight sessions the editor creates.
type HighlightConfig struct {
	KeywordsInLiterals bool          `yaml:"keywords_in_literals"`
	ParseTimeout       time.Duration `yaml:"parse_timeout"`
	MaxDocumentBytes   int           `yaml:"max_document_bytes"`
}

// StyleSpec is a user override for one category. Unset fields keep the
// theme's value.
type StyleSpec struct {
	Foreground string `yaml:"foreground"`
	Bold       *bool  `yaml:"bold"`
	Italic     *bool  `yaml:"italic"`
}

// Config holds user configuration values.
type Config struct {
	LogLevel  string                `yaml:"log_level"`
	Theme     string                `yaml:"theme"`
	Highlight HighlightConfig       `yaml:"highlight"`
	Styles    map[string]StyleSpec  `yaml:"styles"`
	Keymap    map[string]Keybinding `yaml:"keymap"`
}

// Default returns a Config with default key mappings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Theme:    "default",
		Highlight: HighlightConfig{
			MaxDocumentBytes: 4 << 20,
		},
		Keymap: DefaultKeymap(),
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit":      mustParse("Ctrl+Q"),
		"save":      mustParse("Ctrl+S"),
		"undo":      mustParse("Ctrl+Z"),
		"redo":      mustParse("Ctrl+Y"),
		"swap_up":   mustParse("Ctrl+Up"),
		"swap_down": mustParse("Ctrl+Down"),
		"word_prev": mustParse("Ctrl+Left"),
		"word_next": mustParse("Ctrl+Right"),
		"clear":     mustParse("Esc"),
		"next_doc":  mustParse("Ctrl+N"),
		"prev_doc":  mustParse("Ctrl+P"),
		"close_doc": mustParse("Ctrl+W"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.Theme != "" {
		c.Theme = file.Theme
	}
	c.Highlight.KeywordsInLiterals = file.Highlight.KeywordsInLiterals
	if file.Highlight.ParseTimeout > 0 {
		c.Highlight.ParseTimeout = file.Highlight.ParseTimeout
	}
	if file.Highlight.MaxDocumentBytes != 0 {
		c.Highlight.MaxDocumentBytes = file.Highlight.MaxDocumentBytes
	}
	c.Styles = file.Styles
	for cmd, kb := range file.Keymap {
		c.Keymap[cmd] = kb
	}
	return nil
}

// DefaultPath is ~/.editerako/config.yaml, or "" when there is no home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".editerako", "config.yaml")
}

// LoadDefault attempts to read ~/.editerako/config.yaml.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// SessionOptions translates the highlight section into session options.
// A negative max_document_bytes disables the size limit.
func (c *Config) SessionOptions() []highlight.Option {
	return []highlight.Option{
		highlight.WithClassifyOptions(highlight.ClassifyOptions{
			KeywordsInLiterals: c.Highlight.KeywordsInLiterals,
		}),
		highlight.WithParseTimeout(c.Highlight.ParseTimeout),
		highlight.WithMaxBytes(max(c.Highlight.MaxDocumentBytes, 0)),
	}
}

// ResolveTheme resolves the configured theme and applies the style
// overrides on top of it.
func (c *Config) ResolveTheme() (Theme, error) {
	t, err := ResolveTheme(c.Theme)
	if err != nil {
		return DefaultTheme(), err
	}
	if err := t.Styles.Apply(c.Styles); err != nil {
		return t, err
	}
	return t, nil
}

// UnmarshalYAML reads a binding written as "Ctrl+S".
func (k *Keybinding) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	kb, err := ParseKeybinding(s)
	if err != nil {
		return err
	}
	*k = kb
	return nil
}

var namedKeys = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"enter":     tcell.KeyEnter,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
}

var modifiers = map[string]tcell.ModMask{
	"ctrl":  tcell.ModCtrl,
	"alt":   tcell.ModAlt,
	"shift": tcell.ModShift,
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Modifiers are Ctrl, Alt and Shift; the key is a letter or one
// of the named keys (Up, Down, Home, Esc, ...). A bare letter needs Ctrl or
// Alt.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(s, "+")
	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifiers[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Keybinding{}, fmt.Errorf("%w: modifier in %q", ErrInvalidKeybinding, s)
		}
		mod |= m
	}
	key := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if k, ok := namedKeys[key]; ok {
		return Keybinding{Key: k, Mod: mod}, nil
	}
	r := []rune(key)
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' || mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return Keybinding{}, fmt.Errorf("%w: key in %q", ErrInvalidKeybinding, s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: mod}, nil
}

func mustParse(s string) Keybinding {
	kb, err := ParseKeybinding(s)
	if err != nil {
		panic(err)
	}
	return kb
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key != tcell.KeyRune {
		return k.Key == ev.Key() && k.Mod == ev.Modifiers()
	}
	// Terminals report Ctrl+letter as a control key.
	if k.Mod == tcell.ModCtrl && ev.Key() == tcell.KeyCtrlA+tcell.Key(k.Rune-'a') {
		return true
	}
	return false
}
