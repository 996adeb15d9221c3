package grammar

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"gopkg.in/yaml.v3"
)

// LanguageSpec defines a language entry in config.
type LanguageSpec struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind"`
	Extensions []string `yaml:"extensions"`
}

// LanguageConfig is the root schema.
type LanguageConfig struct {
	Languages []LanguageSpec `yaml:"languages"`
}

var defaultLanguageConfig = LanguageConfig{
	Languages: []LanguageSpec{
		{ID: "cpp", Name: "C/C++", Kind: "cfamily", Extensions: []string{".cpp", ".cc", ".cxx", ".c", ".h", ".hpp", ".hh"}},
		{ID: "html", Name: "HTML", Kind: "markup", Extensions: []string{".html", ".htm", ".tsx"}},
	},
}

// DefaultLanguageConfig returns a copy of the built-in extension table.
func DefaultLanguageConfig() *LanguageConfig {
	cfg := LanguageConfig{Languages: make([]LanguageSpec, len(defaultLanguageConfig.Languages))}
	copy(cfg.Languages, defaultLanguageConfig.Languages)
	return &cfg
}

// LoadLanguageConfig loads config from the given YAML path.
// If missing or invalid, returns defaults.
func LoadLanguageConfig(path string) *LanguageConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultLanguageConfig()
	}
	var cfg LanguageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil || len(cfg.Languages) == 0 {
		return DefaultLanguageConfig()
	}
	return &cfg
}

// DetectLanguageByPath returns the first matching language by extension.
func DetectLanguageByPath(cfg *LanguageConfig, path string) *LanguageSpec {
	if cfg == nil {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, lang := range cfg.Languages {
		for _, e := range lang.Extensions {
			if strings.EqualFold(e, ext) {
				// return a copy to avoid external mutation
				l := lang
				return &l
			}
		}
	}
	return nil
}

// DetectKind picks the kind for path. The configured table wins; otherwise
// linguist's extension data is consulted. When nothing matches, CFamily is
// returned with ok=false.
func DetectKind(cfg *LanguageConfig, path string) (kind Kind, ok bool) {
	if spec := DetectLanguageByPath(cfg, path); spec != nil {
		if k, err := ParseKind(spec.Kind); err == nil {
			return k, true
		}
	}
	if lang, _ := enry.GetLanguageByExtension(path); lang != "" {
		switch lang {
		case "C", "C++", "Objective-C", "Objective-C++", "Cuda":
			return CFamily, true
		case "HTML", "XML", "Vue", "SVG", "HTML+ERB", "HTML+PHP":
			return Markup, true
		}
	}
	return CFamily, false
}
