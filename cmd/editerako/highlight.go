package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"example.com/editerako/pkg/config"
	"example.com/editerako/pkg/grammar"
	"example.com/editerako/pkg/highlight"
	"example.com/editerako/pkg/logs"
)

type highlightOptions struct {
	kind   string
	format string
}

func newHighlightCmd(root *rootOptions) *cobra.Command {
	opts := &highlightOptions{}
	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Highlight a file and print it, or its ranges as JSON",
		Long: `Runs one highlight pass over a file ("-" reads stdin) and prints
the text styled with the configured theme, or the classified ranges as JSON
with --format json. Offsets are in characters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.kind, "kind", "", "language kind: cfamily or markup (default: from file name)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")
	return cmd
}

type highlightReport struct {
	File   string            `json:"file"`
	Kind   string            `json:"kind"`
	Chars  int               `json:"chars"`
	Ranges []highlight.Range `json:"ranges"`
}

func runHighlight(cmd *cobra.Command, root *rootOptions, opts *highlightOptions, path string) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	lg := root.logger(cfg)
	defer lg.Close()
	stop, err := root.startTelemetry(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer stop()
	ctx := logs.WithLogger(cmd.Context(), lg)

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	// Invalid bytes become U+FFFD so rune indexes line up with the
	// character offsets of the ranges.
	text := strings.ToValidUTF8(strings.ReplaceAll(string(data), "\r\n", "\n"), "\uFFFD")

	kind, err := resolveKind(opts.kind, path)
	if err != nil {
		return err
	}

	engine := highlight.NewEngine(cfg.SessionOptions()...)
	defer engine.Close()
	h, err := engine.Attach(ctx, text, kind)
	if err != nil {
		return err
	}
	s, err := engine.Session(h)
	if err != nil {
		return err
	}
	if err := s.Disabled(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: highlighting disabled:", err)
	}
	ranges := s.Ranges()
	if err := engine.Detach(h); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(highlightReport{
			File:   path,
			Kind:   kind.String(),
			Chars:  highlight.NewTranslator([]byte(text)).Len(),
			Ranges: ranges,
		})
	}
	theme, err := cfg.ResolveTheme()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}
	_, err = io.WriteString(out, render(lipgloss.NewRenderer(out), text, ranges, theme.Styles))
	return err
}

func resolveKind(flag, path string) (grammar.Kind, error) {
	if flag != "" {
		return grammar.ParseKind(flag)
	}
	kind, _ := grammar.DetectKind(grammar.DefaultLanguageConfig(), path)
	return kind, nil
}

// render styles runs of equally classified characters. Newlines are
// written raw so lipgloss never pads a run to a block.
func render(re *lipgloss.Renderer, text string, ranges []highlight.Range, styles config.StyleTable) string {
	runes := []rune(text)
	cats := highlight.Flatten(ranges, len(runes))
	var sb strings.Builder
	flush := func(seg []rune, c highlight.Category) {
		if len(seg) == 0 {
			return
		}
		st, ok := styles[c]
		if c == highlight.PlainText || !ok {
			sb.WriteString(string(seg))
			return
		}
		ls := re.NewStyle().Bold(st.Bold).Italic(st.Italic)
		if hex := st.Hex(); hex != "" {
			ls = ls.Foreground(lipgloss.Color(hex))
		}
		sb.WriteString(ls.Render(string(seg)))
	}
	start := 0
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\n' && cats[i] == cats[start] {
			continue
		}
		if start < len(runes) {
			flush(runes[start:i], cats[start])
		}
		if i < len(runes) && runes[i] == '\n' {
			sb.WriteByte('\n')
			start = i + 1
			continue
		}
		start = i
	}
	return sb.String()
}
