package highlight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/editerako/pkg/grammar"
)

// highlightText runs one pass and returns the per-character result.
func highlightText(t *testing.T, kind grammar.Kind, text string, opts ...Option) []Category {
	t.Helper()
	s := NewSession(context.Background(), kind, text, opts...)
	t.Cleanup(s.Close)
	require.NoError(t, s.Disabled())
	ranges := s.Ranges()
	n := NewTranslator([]byte(text)).Len()
	for _, r := range ranges {
		require.GreaterOrEqual(t, r.Start, 0)
		require.Greater(t, r.Length, 0)
		require.LessOrEqual(t, r.End(), n, "range %+v past end of %q", r, text)
	}
	return Flatten(ranges, n)
}

func TestClassifyIfStatement(t *testing.T) {
	cats := highlightText(t, grammar.CFamily, "if (x) { return 1; }")

	assert.Equal(t, Keyword, cats[0])
	assert.Equal(t, Keyword, cats[1])
	assert.Equal(t, Punctuation, cats[3])
	assert.Equal(t, Variable, cats[4])
	assert.Equal(t, Punctuation, cats[7])
	for i := 9; i < 15; i++ {
		assert.Equal(t, Keyword, cats[i], "return[%d]", i-9)
	}
	assert.Equal(t, Number, cats[16])
	assert.Equal(t, Punctuation, cats[17])
	assert.Equal(t, Punctuation, cats[19])
}

func TestClassifyFunctionAndParameter(t *testing.T) {
	cats := highlightText(t, grammar.CFamily, "int add(int a) { return a; }")

	assert.Equal(t, Type, cats[0])
	assert.Equal(t, Function, cats[4])
	assert.Equal(t, Function, cats[6])
	assert.Equal(t, Type, cats[8])
	assert.Equal(t, Parameter, cats[12])
}

func TestClassifyClassName(t *testing.T) {
	cats := highlightText(t, grammar.CFamily, "struct Point { int x; };")

	assert.Equal(t, Keyword, cats[0])
	assert.Equal(t, ClassName, cats[7])
}

func TestClassifyMalformedInput(t *testing.T) {
	cats := highlightText(t, grammar.CFamily, "class Foo {")

	for i := 0; i < 5; i++ {
		assert.Equal(t, Keyword, cats[i])
	}
	assert.NotEqual(t, PlainText, cats[6], "identifier inside an error node still gets a category")
}

func TestClassifyPreprocessor(t *testing.T) {
	text := "#include <stdio.h>\n#define N 10\n#if N\n#endif\n"
	cats := highlightText(t, grammar.CFamily, text)

	assert.Equal(t, Preprocessor, cats[0])
	assert.Equal(t, String, cats[10], "system header name")
	assert.Equal(t, Preprocessor, cats[27], "macro name")
	// "if" after '#' belongs to the directive, not the reserved-word scan.
	assert.Equal(t, Preprocessor, cats[33])
	assert.Equal(t, Preprocessor, cats[34])
}

func TestKeywordsInsideLiterals(t *testing.T) {
	text := `const char* s = "if"; // return`

	cats := highlightText(t, grammar.CFamily, text)
	assert.Equal(t, Keyword, cats[0])
	assert.Equal(t, Type, cats[6])
	assert.Equal(t, String, cats[17])
	assert.Equal(t, String, cats[18])
	assert.Equal(t, Comment, cats[25])

	cats = highlightText(t, grammar.CFamily, text, WithClassifyOptions(ClassifyOptions{KeywordsInLiterals: true}))
	assert.Equal(t, Keyword, cats[17])
	assert.Equal(t, Keyword, cats[25])
}

func TestClassifyMarkup(t *testing.T) {
	text := `<div class="a">x</div>`
	cats := highlightText(t, grammar.Markup, text)

	assert.Equal(t, Punctuation, cats[0])
	for i := 1; i <= 3; i++ {
		assert.Equal(t, Keyword, cats[i])
	}
	for i := 5; i <= 9; i++ {
		assert.Equal(t, Type, cats[i])
	}
	assert.Equal(t, Operator, cats[10])
	for i := 11; i <= 13; i++ {
		assert.Equal(t, String, cats[i])
	}
	assert.Equal(t, PlainText, cats[15])
	assert.Equal(t, Keyword, cats[18])
}

func TestClassifyMarkupComment(t *testing.T) {
	cats := highlightText(t, grammar.Markup, "<!-- if --><p>if</p>")

	for i := 0; i < 11; i++ {
		assert.Equal(t, Comment, cats[i])
	}
	assert.Equal(t, PlainText, cats[14], "markup has no reserved words")
}

func TestClassifyMultibyteShift(t *testing.T) {
	text := "/* é */ if (a) {}"
	cats := highlightText(t, grammar.CFamily, text)

	require.Len(t, cats, 17)
	for i := 0; i < 7; i++ {
		assert.Equal(t, Comment, cats[i])
	}
	assert.Equal(t, Keyword, cats[8])
	assert.Equal(t, Keyword, cats[9])
	assert.Equal(t, Variable, cats[12])
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "namespace ns { int f(int v) { return v * 2; } }"
	a := NewSession(context.Background(), grammar.CFamily, text)
	defer a.Close()
	b := NewSession(context.Background(), grammar.CFamily, text)
	defer b.Close()
	assert.Equal(t, a.Ranges(), b.Ranges())
	assert.Equal(t, a.Ranges(), a.OnBlockChanged(context.Background(), text))
}

func TestClassifyNilRoot(t *testing.T) {
	assert.Nil(t, Classify(grammar.CFamily, nil, []byte("int"), ClassifyOptions{}))
	assert.Nil(t, Classify(grammar.Kind(42), nil, nil, ClassifyOptions{}))
}

func TestKeywords(t *testing.T) {
	kws := Keywords(grammar.CFamily)
	assert.Contains(t, kws, "return")
	assert.Contains(t, kws, "nullptr")
	assert.NotContains(t, kws, "int")
	assert.Empty(t, Keywords(grammar.Markup))
}

func TestLiteralSpans(t *testing.T) {
	spans := literalSpans([]ByteRange{
		{Start: 0, End: 4, Category: String},
		{Start: 1, End: 3, Category: String},
		{Start: 2, End: 6, Category: Comment},
		{Start: 6, End: 7, Category: Keyword},
		{Start: 10, End: 12, Category: Comment},
	})
	assert.Equal(t, []span{{0, 6}, {10, 12}}, spans)
	assert.True(t, inSpans(spans, 5))
	assert.False(t, inSpans(spans, 6))
	assert.True(t, inSpans(spans, 10))
	assert.False(t, inSpans(spans, 12))
}
