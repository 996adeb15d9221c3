package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"example.com/editerako/pkg/config"
	"example.com/editerako/pkg/grammar"
	"example.com/editerako/pkg/highlight"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("EDITERAKO_LOG", "")
	t.Setenv("EDITERAKO_LOG_FILE", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "editerako dev\n", out)
}

func TestHighlightJSON(t *testing.T) {
	path := writeFile(t, "main.c", "int main() { return 0; }\n")
	out, _, err := execute(t, "", "highlight", path, "--format", "json")
	require.NoError(t, err)

	var rep highlightReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "cfamily", rep.Kind)
	assert.Equal(t, 25, rep.Chars)
	assert.Contains(t, rep.Ranges, highlight.Range{Start: 0, Length: 3, Category: highlight.Type})
	assert.Contains(t, rep.Ranges, highlight.Range{Start: 13, Length: 6, Category: highlight.Keyword})
	assert.Contains(t, out, `"category": "keyword"`)
}

func TestHighlightStdinMarkup(t *testing.T) {
	out, _, err := execute(t, "<b>x</b>", "highlight", "-", "--kind", "markup", "--format", "json")
	require.NoError(t, err)

	var rep highlightReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "markup", rep.Kind)
	assert.Contains(t, rep.Ranges, highlight.Range{Start: 1, Length: 1, Category: highlight.Keyword})
}

func TestHighlightTextKeepsContent(t *testing.T) {
	src := "// note\nint x = 1;\n\nchar *s = \"é\";\n"
	path := writeFile(t, "x.cpp", src)
	out, _, err := execute(t, "", "highlight", path)
	require.NoError(t, err)
	// not a terminal: no escape sequences
	assert.Equal(t, src, out)
}

func TestHighlightInvalidUTF8(t *testing.T) {
	in := "int x = \"\xff\xfe\";\nint y;\n"
	out, _, err := execute(t, in, "highlight", "-", "--kind", "cfamily", "--format", "json")
	require.NoError(t, err)

	var rep highlightReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	clean := "int x = \"\uFFFD\";\nint y;\n"
	assert.Equal(t, utf8.RuneCountInString(clean), rep.Chars)
	assert.Equal(t, highlight.NewTranslator([]byte(clean)).Len(), rep.Chars)
	assert.Contains(t, rep.Ranges, highlight.Range{Start: 0, Length: 3, Category: highlight.Type})
	assert.Contains(t, rep.Ranges, highlight.Range{Start: 13, Length: 3, Category: highlight.Type})
	for _, r := range rep.Ranges {
		assert.LessOrEqual(t, r.Start+r.Length, rep.Chars)
	}

	text, _, err := execute(t, in, "highlight", "-", "--kind", "cfamily")
	require.NoError(t, err)
	assert.Equal(t, clean, text)
}

func TestHighlightErrors(t *testing.T) {
	path := writeFile(t, "a.c", "int x;")
	_, _, err := execute(t, "", "highlight", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = execute(t, "", "highlight", path, "--kind", "cobol")
	assert.ErrorIs(t, err, grammar.ErrUnsupportedKind)

	_, _, err = execute(t, "", "highlight", filepath.Join(t.TempDir(), "none.c"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, "", "--telemetry", "carrier-pigeon", "highlight", path)
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "keymap:\n  quit: Hyper+Q\n")
	t.Setenv("EDITERAKO_LOG", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfg, "highlight", "-"})
	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalidKeybinding)
}

func TestRenderSplitsRunsAtNewlines(t *testing.T) {
	var buf bytes.Buffer
	text := "ab\n\ncd"
	ranges := []highlight.Range{
		{Start: 0, Length: 6, Category: highlight.Comment},
		{Start: 4, Length: 1, Category: highlight.Keyword},
	}
	got := render(lipgloss.NewRenderer(&buf), text, ranges, config.DefaultStyles())
	assert.Equal(t, text, got)
	assert.Empty(t, render(lipgloss.NewRenderer(&buf), "", nil, config.DefaultStyles()))
}

func TestEditTelemetryWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.log")
	old := telemetryLog
	telemetryLog = path
	t.Cleanup(func() { telemetryLog = old })

	opts := &rootOptions{telemetry: "stdout"}
	stop, err := opts.startEditTelemetry(context.Background())
	require.NoError(t, err)
	_, span := otel.Tracer("test").Start(context.Background(), "edit-span")
	span.End()
	stop()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "edit-span")
}

func TestEditTelemetryNoneOpensNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.log")
	old := telemetryLog
	telemetryLog = path
	t.Cleanup(func() { telemetryLog = old })

	opts := &rootOptions{telemetry: "none"}
	stop, err := opts.startEditTelemetry(context.Background())
	require.NoError(t, err)
	stop()
	assert.NoFileExists(t, path)

	opts.telemetry = "carrier-pigeon"
	_, err = opts.startEditTelemetry(context.Background())
	assert.Error(t, err)
}
