package highlight

import (
	"sort"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"example.com/editerako/pkg/buffer"
	"example.com/editerako/pkg/grammar"
)

// ClassifyOptions tunes a classification pass.
type ClassifyOptions struct {
	// KeywordsInLiterals lets the reserved-word scan mark words that sit
	// inside string and comment spans.
	KeywordsInLiterals bool
}

// Classify walks the tree rooted at root in pre-order and returns the
// classified byte ranges of src, followed by the ranges of the reserved-word
// scan. Ranges may overlap; later ones take precedence when applied.
func Classify(kind grammar.Kind, root *sitter.Node, src []byte, opts ClassifyOptions) []ByteRange {
	rs := rulesFor(kind)
	if rs == nil || root == nil {
		return nil
	}
	out := walk(rs, root, src)
	return append(out, scanKeywords(rs, src, out, opts)...)
}

func walk(rs *ruleSet, root *sitter.Node, src []byte) []ByteRange {
	var out []ByteRange
	cur := sitter.NewTreeCursor(root)
	defer cur.Close()

	var ancestors []string
	for {
		n := cur.CurrentNode()
		typ := n.Type()
		start, end := int(n.StartByte()), int(n.EndByte())
		if end > len(src) {
			end = len(src)
		}
		// Empty nodes get no range, but their children are still visited.
		if end > start {
			if c, ok := rs.lookup(typ, ancestors); ok && c != PlainText {
				out = append(out, ByteRange{Start: start, End: end, Category: c})
			}
		}
		if cur.GoToFirstChild() {
			ancestors = append(ancestors, typ)
			continue
		}
		for !cur.GoToNextSibling() {
			if !cur.GoToParent() {
				return out
			}
			ancestors = ancestors[:len(ancestors)-1]
		}
	}
}

type span struct{ start, end int }

// literalSpans merges the string and comment ranges of a walk. Walk output
// is ordered by start offset.
func literalSpans(walked []ByteRange) []span {
	var spans []span
	for _, r := range walked {
		if r.Category != String && r.Category != Comment {
			continue
		}
		if n := len(spans); n > 0 && r.Start <= spans[n-1].end {
			if r.End > spans[n-1].end {
				spans[n-1].end = r.End
			}
			continue
		}
		spans = append(spans, span{r.Start, r.End})
	}
	return spans
}

func inSpans(spans []span, off int) bool {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].end > off })
	return i < len(spans) && spans[i].start <= off
}

// scanKeywords finds identifier-delimited words equal to a reserved word.
// Words directly after '#' are directive names and are left alone.
func scanKeywords(rs *ruleSet, src []byte, walked []ByteRange, opts ClassifyOptions) []ByteRange {
	if len(rs.keywords) == 0 {
		return nil
	}
	var skip []span
	if !opts.KeywordsInLiterals {
		skip = literalSpans(walked)
	}
	var out []ByteRange
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if !buffer.IsWordRune(r) {
			i += size
			continue
		}
		start := i
		for i < len(src) {
			r, size = utf8.DecodeRune(src[i:])
			if !buffer.IsWordRune(r) {
				break
			}
			i += size
		}
		if !rs.keywords[string(src[start:i])] {
			continue
		}
		if start > 0 && src[start-1] == '#' {
			continue
		}
		if skip != nil && inSpans(skip, start) {
			continue
		}
		out = append(out, ByteRange{Start: start, End: i, Category: Keyword})
	}
	return out
}
