package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/editerako/pkg/highlight"
)

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	require.NoError(t, err)
	assert.True(t, kb.Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)))
	assert.True(t, kb.Matches(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)))
	assert.False(t, kb.Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	kb, err = ParseKeybinding("ctrl+up")
	require.NoError(t, err)
	assert.True(t, kb.Matches(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl)))
	assert.False(t, kb.Matches(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))

	kb, err = ParseKeybinding("Esc")
	require.NoError(t, err)
	assert.Equal(t, tcell.KeyEscape, kb.Key)
}

func TestParseKeybinding_Invalid(t *testing.T) {
	for _, s := range []string{"Ctrl+", "Hyper+S", "S", "Ctrl+Ü", "Ctrl+ab"} {
		_, err := ParseKeybinding(s)
		assert.ErrorIs(t, err, ErrInvalidKeybinding, s)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`log_level: debug
theme: light
highlight:
  keywords_in_literals: true
  parse_timeout: 50ms
  max_document_bytes: 1024
styles:
  keyword: { foreground: "#ff0000", bold: false }
keymap:
  quit: Ctrl+X
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "light", cfg.Theme)
	assert.True(t, cfg.Highlight.KeywordsInLiterals)
	assert.Equal(t, 50*time.Millisecond, cfg.Highlight.ParseTimeout)
	assert.Equal(t, 1024, cfg.Highlight.MaxDocumentBytes)
	assert.True(t, cfg.Keymap["quit"].Matches(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)))
	assert.True(t, cfg.Keymap["save"].Matches(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)), "unlisted bindings keep defaults")

	th, err := cfg.ResolveTheme()
	require.NoError(t, err)
	kw := th.Styles[highlight.Keyword]
	assert.Equal(t, "#ff0000", kw.Hex())
	assert.False(t, kw.Bold)
	assert.Equal(t, tcell.ColorWhite, th.UIBackground)

	assert.Len(t, cfg.SessionOptions(), 3)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := Parse([]byte("keymap:\n  quit: Hyper+Q\n"))
	assert.ErrorIs(t, err, ErrInvalidKeybinding)

	_, err = Parse([]byte("highlight: [1, 2"))
	assert.Error(t, err)

	cfg, err := Parse([]byte("styles:\n  sparkle: { foreground: red }\n"))
	require.NoError(t, err)
	_, err = cfg.ResolveTheme()
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestStyleTableApply(t *testing.T) {
	st := DefaultStyles()
	yes := true
	require.NoError(t, st.Apply(map[string]StyleSpec{
		"comment": {Foreground: "not-a-color"},
		"number":  {Foreground: "#00ff00", Italic: &yes},
	}))
	assert.Equal(t, DefaultStyles()[highlight.Comment], st[highlight.Comment], "bad colors keep the old value")
	assert.Equal(t, "#00ff00", st[highlight.Number].Hex())
	assert.True(t, st[highlight.Number].Italic)
	assert.NotEqual(t, st[highlight.Number], DefaultStyles()[highlight.Number])
}

func TestDefaultStylesCoverEveryCategory(t *testing.T) {
	st := DefaultStyles()
	for _, c := range highlight.Categories() {
		if c == highlight.PlainText {
			continue
		}
		assert.NotEmpty(t, st[c].Hex(), c.String())
	}
	assert.Equal(t, "#569cd6", st[highlight.Keyword].Hex())
	assert.True(t, st[highlight.Comment].Italic)
}

func TestStyleTcell(t *testing.T) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	got := Style{Foreground: tcell.ColorRed, Bold: true}.Tcell(base)
	fg, bg, attr := got.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)
	assert.Equal(t, tcell.ColorBlack, bg)
	assert.NotZero(t, attr&tcell.AttrBold)
}

func TestResolveTheme(t *testing.T) {
	for name := range BuiltinThemes() {
		th, err := ResolveTheme(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, th.Styles, name)
	}
	_, err := ResolveTheme(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
