package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/editerako/pkg/grammar"
)

func TestEditorFocus(t *testing.T) {
	e := New()
	assert.Equal(t, Document{}, e.Next())
	assert.Equal(t, Document{}, e.Prev())
	_, ok := e.RemoveCurrent()
	assert.False(t, ok)

	e.Add(Document{FilePath: "a.c"})
	e.Add(Document{FilePath: "b.c"})
	e.Add(Document{FilePath: "c.html"})
	assert.Equal(t, 3, e.Len())
	assert.Equal(t, "c.html", e.CurrentDocument().FilePath)

	assert.Equal(t, "a.c", e.Next().FilePath)
	assert.Equal(t, "c.html", e.Prev().FilePath)
	assert.Equal(t, "b.c", e.Prev().FilePath)

	d := e.CurrentDocument()
	d.Dirty = true
	e.UpdateCurrent(d)
	assert.True(t, e.Docs[1].Dirty)

	removed, ok := e.RemoveCurrent()
	require.True(t, ok)
	assert.Equal(t, "b.c", removed.FilePath)
	assert.Equal(t, "a.c", e.CurrentDocument().FilePath)

	_, ok = e.RemoveCurrent()
	require.True(t, ok)
	assert.Equal(t, "c.html", e.CurrentDocument().FilePath)
}

func TestFind(t *testing.T) {
	e := New()
	e.Add(Document{})
	e.Add(Document{FilePath: filepath.Join("dir", "x.c")})
	i, ok := e.Find("dir/./x.c")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = e.Find("y.c")
	assert.False(t, ok)
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.htm")
	require.NoError(t, os.WriteFile(path, []byte("<p>\r\nx</p>"), 0o644))

	d, err := ReadDocument(path, grammar.DefaultLanguageConfig())
	require.NoError(t, err)
	assert.Equal(t, grammar.Markup, d.Kind)
	assert.Equal(t, "<p>\nx</p>", d.Doc.Text())
	assert.False(t, d.Attached)
	assert.Equal(t, "page.htm", d.Name())
	assert.Equal(t, "[No File]", Document{}.Name())

	_, err = ReadDocument(filepath.Join(t.TempDir(), "none.c"), grammar.DefaultLanguageConfig())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
