package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"example.com/editerako/pkg/highlight"
)

var ErrThemeFormat = errors.New("unrecognized theme format")

// ImportTheme reads a theme file in a known format and converts it to Theme.
// Supported:
// - Base16 YAML (keys base00..base0F)
// - Alacritty YAML (colors.primary/normal/bright/cursor)
func ImportTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", filepath.Base(path), err)
	}
	flat := map[string]string{}
	flatten("", doc, flat)
	switch {
	case flat["base00"] != "":
		return importBase16(flat), nil
	case flat["colors.primary.background"] != "" || flat["colors.normal.red"] != "":
		return importAlacritty(flat), nil
	default:
		return Theme{}, fmt.Errorf("%w: %s", ErrThemeFormat, filepath.Base(path))
	}
}

// flatten lowercases keys and joins nested maps with dots.
func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := strings.ToLower(k)
			if prefix != "" {
				key = prefix + "." + key
			}
			flatten(key, child, out)
		}
	case string:
		out[prefix] = t
	case int:
		// unquoted all-digit hex such as 181818 decodes as a number
		out[prefix] = fmt.Sprintf("%06d", t)
	}
}

func parseHexToColor(v string, fallback tcell.Color) tcell.Color {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "'\"")
	if strings.HasPrefix(v, "#") {
		v = v[1:]
	} else if strings.HasPrefix(strings.ToLower(v), "0x") {
		v = v[2:]
	}
	if len(v) != 6 {
		return fallback
	}
	if _, err := strconv.ParseInt(v, 16, 32); err != nil {
		return fallback
	}
	return ParseColor("#"+strings.ToLower(v), fallback)
}

// paint sets the foreground of c, keeping its weight and slant.
func paint(t StyleTable, c highlight.Category, color tcell.Color) {
	s := t[c]
	s.Foreground = color
	t[c] = s
}

// importBase16 maps a Base16 scheme onto the editor roles following the
// Base16 styling guidelines.
func importBase16(kv map[string]string) Theme {
	t := DefaultTheme()
	get := func(k string, fb tcell.Color) tcell.Color { return parseHexToColor(kv[k], fb) }

	t.UIBackground = get("base00", t.UIBackground)
	t.UIForeground = get("base05", t.UIForeground)
	t.StatusBackground = get("base01", get("base02", t.StatusBackground))
	t.StatusForeground = t.UIForeground
	t.CursorBG = get("base05", t.CursorBG)
	t.CursorText = t.UIBackground
	t.SecondaryCursorBG = get("base03", t.SecondaryCursorBG)
	t.LineNumber = get("base03", t.LineNumber)

	s := t.Styles
	paint(s, highlight.Variable, get("base08", s[highlight.Variable].Foreground))
	paint(s, highlight.Parameter, get("base08", s[highlight.Parameter].Foreground))
	paint(s, highlight.Number, get("base09", s[highlight.Number].Foreground))
	paint(s, highlight.Type, get("base0a", s[highlight.Type].Foreground))
	paint(s, highlight.ClassName, get("base0a", s[highlight.ClassName].Foreground))
	paint(s, highlight.String, get("base0b", s[highlight.String].Foreground))
	paint(s, highlight.Operator, get("base0c", s[highlight.Operator].Foreground))
	paint(s, highlight.Function, get("base0d", s[highlight.Function].Foreground))
	paint(s, highlight.Keyword, get("base0e", s[highlight.Keyword].Foreground))
	paint(s, highlight.Preprocessor, get("base0e", s[highlight.Preprocessor].Foreground))
	paint(s, highlight.Namespace, get("base0f", s[highlight.Namespace].Foreground))
	paint(s, highlight.Punctuation, get("base0f", s[highlight.Punctuation].Foreground))
	paint(s, highlight.Comment, get("base03", s[highlight.Comment].Foreground))
	return t
}

// importAlacritty maps an Alacritty color scheme onto the editor roles.
func importAlacritty(kv map[string]string) Theme {
	t := DefaultTheme()
	get := func(p string, fb tcell.Color) tcell.Color { return parseHexToColor(kv[p], fb) }

	t.UIBackground = get("colors.primary.background", t.UIBackground)
	t.UIForeground = get("colors.primary.foreground", t.UIForeground)
	t.StatusBackground = get("colors.bright.black", get("colors.normal.white", t.StatusBackground))
	t.StatusForeground = t.UIForeground
	t.CursorBG = get("colors.cursor.cursor", t.UIForeground)
	t.CursorText = get("colors.cursor.text", t.UIBackground)
	t.SecondaryCursorBG = get("colors.bright.black", t.SecondaryCursorBG)

	s := t.Styles
	paint(s, highlight.Keyword, get("colors.normal.blue", s[highlight.Keyword].Foreground))
	paint(s, highlight.String, get("colors.normal.green", s[highlight.String].Foreground))
	paint(s, highlight.Comment, get("colors.bright.black", get("colors.normal.black", s[highlight.Comment].Foreground)))
	paint(s, highlight.Number, get("colors.normal.yellow", s[highlight.Number].Foreground))
	paint(s, highlight.Type, get("colors.normal.cyan", s[highlight.Type].Foreground))
	paint(s, highlight.ClassName, get("colors.normal.cyan", s[highlight.ClassName].Foreground))
	paint(s, highlight.Function, get("colors.bright.yellow", s[highlight.Function].Foreground))
	paint(s, highlight.Preprocessor, get("colors.normal.magenta", s[highlight.Preprocessor].Foreground))
	paint(s, highlight.Variable, get("colors.normal.red", s[highlight.Variable].Foreground))
	return t
}
