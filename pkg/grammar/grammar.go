// Package grammar exposes the compiled tree-sitter grammars used by the
// highlighter and maps file names to the language kind a host should request.
package grammar

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/html"
)

// Kind selects the grammar and classification table of a document.
type Kind int

const (
	// CFamily is C and C++ source, parsed with the tree-sitter C++ grammar.
	CFamily Kind = iota
	// Markup is HTML-like markup, parsed with the tree-sitter HTML grammar.
	Markup
)

var (
	// ErrUnsupportedKind is returned for a Kind outside the closed set.
	ErrUnsupportedKind = errors.New("grammar: unsupported language kind")
	// ErrGrammarUnavailable is returned when a binding yields no language.
	ErrGrammarUnavailable = errors.New("grammar: language binding unavailable")
)

func (k Kind) String() string {
	switch k {
	case CFamily:
		return "cfamily"
	case Markup:
		return "markup"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a textual kind ("cfamily", "cpp", "markup", "html") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cfamily", "c", "cpp", "c++":
		return CFamily, nil
	case "markup", "html":
		return Markup, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// Provider hands out grammars. Implementations must be safe to share between
// sessions; the returned languages are read-only.
type Provider interface {
	Language(k Kind) (*sitter.Language, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(k Kind) (*sitter.Language, error)

// Language calls f(k).
func (f ProviderFunc) Language(k Kind) (*sitter.Language, error) { return f(k) }

type builtin struct {
	once  sync.Once
	langs map[Kind]*sitter.Language
}

var defaultProvider = &builtin{}

// Default returns the provider backed by the compiled-in C++ and HTML grammars.
// Languages are resolved once per process.
func Default() Provider { return defaultProvider }

func (b *builtin) Language(k Kind) (*sitter.Language, error) {
	b.once.Do(func() {
		b.langs = map[Kind]*sitter.Language{
			CFamily: cpp.GetLanguage(),
			Markup:  html.GetLanguage(),
		}
	})
	lang, ok := b.langs[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, k)
	}
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrGrammarUnavailable, k)
	}
	return lang, nil
}
