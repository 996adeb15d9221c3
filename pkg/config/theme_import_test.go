package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/editerako/pkg/highlight"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestImportTheme_Base16(t *testing.T) {
	path := writeFile(t, "base16.yaml", `
scheme: "base16-test"
base00: '181818'
base01: '282828'
base02: '383838'
base03: '585858'
base04: 'b8b8b8'
base05: 'd8d8d8'
base06: 'e8e8e8'
base07: 'f8f8f8'
base08: 'ab4642'
base09: 'dc9656'
base0A: 'f7ca88'
base0B: 'a1b56c'
base0C: '86c1b9'
base0D: '7cafc2'
base0E: 'ba8baf'
base0F: 'a16946'
`)
	th, err := ImportTheme(path)
	require.NoError(t, err)
	assert.NotEqual(t, th.UIForeground, th.UIBackground)
	assert.Equal(t, "#ba8baf", th.Styles[highlight.Keyword].Hex())
	assert.Equal(t, "#a1b56c", th.Styles[highlight.String].Hex())
	assert.Equal(t, "#585858", th.Styles[highlight.Comment].Hex())
	assert.True(t, th.Styles[highlight.Comment].Italic, "weight and slant come from the default theme")
}

func TestImportTheme_Alacritty(t *testing.T) {
	path := writeFile(t, "alacritty.yml", `
colors:
  primary:
    background: '#1d1f21'
    foreground: '#c5c8c6'
  normal:
    black:   '0x1d1f21'
    red:     '0xcc6666'
    green:   '0xb5bd68'
    yellow:  '0xf0c674'
    blue:    '0x81a2be'
    magenta: '0xb294bb'
    cyan:    '0x8abeb7'
    white:   '0xc5c8c6'
  bright:
    black:   '0x969896'
    white:   '0xffffff'
`)
	th, err := ImportTheme(path)
	require.NoError(t, err)
	assert.NotEqual(t, th.UIForeground, th.UIBackground)
	assert.Equal(t, "#81a2be", th.Styles[highlight.Keyword].Hex())
	assert.Equal(t, "#969896", th.Styles[highlight.Comment].Hex())
}

func TestImportTheme_Unknown(t *testing.T) {
	_, err := ImportTheme(writeFile(t, "x.yaml", "name: nothing\n"))
	assert.ErrorIs(t, err, ErrThemeFormat)
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "config.yaml", "theme: dark\n")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config, err error) {
			// a write may be observed before the new content lands
			if err == nil && c.Theme == "light" {
				select {
				case got <- c:
				default:
				}
			}
		})
	}()

	// Keep rewriting until the watcher has registered and sees a change.
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case c := <-got:
			assert.Equal(t, "light", c.Theme)
			cancel()
			require.NoError(t, <-done)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0o644))
		case <-ctx.Done():
			t.Fatal("no reload observed")
		}
	}
}
