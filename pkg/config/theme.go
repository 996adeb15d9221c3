package config

import (
	"fmt"
	"maps"
	"strings"

	"github.com/gdamore/tcell/v2"

	"example.com/editerako/pkg/highlight"
)

// Style is the presentation of one highlight category.
type Style struct {
	Foreground tcell.Color
	Bold       bool
	Italic     bool
}

// Tcell merges s into base.
func (s Style) Tcell(base tcell.Style) tcell.Style {
	if s.Foreground != tcell.ColorDefault {
		base = base.Foreground(s.Foreground)
	}
	return base.Bold(s.Bold).Italic(s.Italic)
}

// Hex renders the foreground as #rrggbb, or "" for the terminal default.
func (s Style) Hex() string {
	if s.Foreground == tcell.ColorDefault {
		return ""
	}
	r, g, b := s.Foreground.RGB()
	if r < 0 {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// StyleTable maps every highlight category to its style. Categories without
// an entry render as plain text.
type StyleTable map[highlight.Category]Style

// DefaultStyles is the stock palette.
func DefaultStyles() StyleTable {
	return StyleTable{
		highlight.Keyword:      {Foreground: tcell.GetColor("#569cd6"), Bold: true},
		highlight.Type:         {Foreground: tcell.GetColor("#4ec9b0"), Bold: true},
		highlight.String:       {Foreground: tcell.GetColor("#d69d85")},
		highlight.Comment:      {Foreground: tcell.GetColor("#6a9955"), Italic: true},
		highlight.Number:       {Foreground: tcell.GetColor("#b5cea8")},
		highlight.Function:     {Foreground: tcell.GetColor("#dcdcaa"), Bold: true},
		highlight.Variable:     {Foreground: tcell.GetColor("#9cdcfe")},
		highlight.Parameter:    {Foreground: tcell.GetColor("#9cdcfe"), Italic: true},
		highlight.Operator:     {Foreground: tcell.GetColor("#d4d4d4")},
		highlight.Punctuation:  {Foreground: tcell.GetColor("#ffd700")},
		highlight.Preprocessor: {Foreground: tcell.GetColor("#c586c0"), Bold: true},
		highlight.Namespace:    {Foreground: tcell.GetColor("#9cdcfe")},
		highlight.ClassName:    {Foreground: tcell.GetColor("#4ec9b0"), Bold: true},
	}
}

// Clone returns an independent copy of t.
func (t StyleTable) Clone() StyleTable { return maps.Clone(t) }

// Style returns the style of c, falling back to the zero Style.
func (t StyleTable) Style(c highlight.Category) Style { return t[c] }

// Apply overlays the user overrides in specs onto t. Unknown category names
// are reported; the other entries still apply.
func (t StyleTable) Apply(specs map[string]StyleSpec) error {
	var bad []string
	for name, spec := range specs {
		c, err := highlight.ParseCategory(name)
		if err != nil {
			bad = append(bad, name)
			continue
		}
		s := t[c]
		s.Foreground = ParseColor(spec.Foreground, s.Foreground)
		if spec.Bold != nil {
			s.Bold = *spec.Bold
		}
		if spec.Italic != nil {
			s.Italic = *spec.Italic
		}
		t[c] = s
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, strings.Join(bad, ", "))
	}
	return nil
}

// Theme represents configurable colors for the editor chrome plus the
// syntax styles.
type Theme struct {
	UIBackground tcell.Color
	UIForeground tcell.Color

	StatusBackground tcell.Color
	StatusForeground tcell.Color

	CursorText        tcell.Color
	CursorBG          tcell.Color
	SecondaryCursorBG tcell.Color

	LineNumber tcell.Color

	Styles StyleTable
}

// DefaultTheme is a dark theme with the stock palette.
func DefaultTheme() Theme {
	return Theme{
		UIBackground: tcell.GetColor("#1e1e1e"),
		UIForeground: tcell.GetColor("#d4d4d4"),

		StatusBackground: tcell.GetColor("#007acc"),
		StatusForeground: tcell.ColorWhite,

		CursorText:        tcell.ColorBlack,
		CursorBG:          tcell.ColorWhite,
		SecondaryCursorBG: tcell.ColorGray,

		LineNumber: tcell.GetColor("#858585"),

		Styles: DefaultStyles(),
	}
}

// TerminalTheme leverages terminal-provided defaults and ANSI palette colors
// so the editor follows the user's terminal theme.
func TerminalTheme() Theme {
	return Theme{
		UIBackground: tcell.ColorDefault,
		UIForeground: tcell.ColorDefault,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorDefault,

		CursorText:        tcell.ColorDefault,
		CursorBG:          tcell.ColorBlue,
		SecondaryCursorBG: tcell.ColorGray,

		LineNumber: tcell.ColorGray,

		Styles: StyleTable{
			highlight.Keyword:      {Foreground: tcell.ColorBlue, Bold: true},
			highlight.Type:         {Foreground: tcell.ColorTeal, Bold: true},
			highlight.String:       {Foreground: tcell.ColorGreen},
			highlight.Comment:      {Foreground: tcell.ColorGray, Italic: true},
			highlight.Number:       {Foreground: tcell.ColorYellow},
			highlight.Function:     {Foreground: tcell.ColorAqua},
			highlight.Preprocessor: {Foreground: tcell.ColorPurple},
			highlight.ClassName:    {Foreground: tcell.ColorTeal, Bold: true},
			highlight.Namespace:    {Foreground: tcell.ColorNavy},
		},
	}
}

// LightTheme suits light terminal backgrounds.
func LightTheme() Theme {
	t := DefaultTheme()
	t.UIBackground = tcell.ColorWhite
	t.UIForeground = tcell.ColorBlack
	t.CursorText = tcell.ColorWhite
	t.CursorBG = tcell.ColorBlack
	t.SecondaryCursorBG = tcell.ColorSilver
	t.Styles[highlight.Keyword] = Style{Foreground: tcell.GetColor("#0000ff"), Bold: true}
	t.Styles[highlight.String] = Style{Foreground: tcell.GetColor("#a31515")}
	t.Styles[highlight.Comment] = Style{Foreground: tcell.GetColor("#008000"), Italic: true}
	t.Styles[highlight.Punctuation] = Style{Foreground: tcell.GetColor("#795e26")}
	t.Styles[highlight.Operator] = Style{Foreground: tcell.ColorBlack}
	t.Styles[highlight.Variable] = Style{Foreground: tcell.GetColor("#001080")}
	return t
}

// BuiltinThemes returns the presets by name. Each call builds fresh tables,
// so callers may modify the result.
func BuiltinThemes() map[string]Theme {
	return map[string]Theme{
		"default":  DefaultTheme(),
		"dark":     DefaultTheme(),
		"light":    LightTheme(),
		"terminal": TerminalTheme(),
	}
}

// ResolveTheme returns the builtin theme called name, or imports name as a
// theme file when no builtin matches. An empty name selects the default.
func ResolveTheme(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	if t, ok := BuiltinThemes()[strings.ToLower(name)]; ok {
		return t, nil
	}
	return ImportTheme(name)
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	// tcell.GetColor supports W3C names or #RRGGBB (case-insensitive)
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
