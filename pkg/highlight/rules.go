package highlight

import (
	"strings"

	"example.com/editerako/pkg/grammar"
)

// ruleSet is the read-only classification data of one language.
type ruleSet struct {
	// nodes maps a grammar node type to its category.
	nodes map[string]Category
	// context maps "ancestor>...>node" keys (two or three levels) to a
	// category; it is consulted before nodes.
	context map[string]Category
	// transparent node types are skipped when building context keys.
	transparent map[string]bool
	// keywords is the closed reserved-word list used by the word scan.
	keywords map[string]bool
	// contextual holds the node types that appear as the last element of
	// some context key, so lookups for other types skip the ancestor walk.
	contextual map[string]bool
}

func newRuleSet(nodes map[string]Category, context map[string]Category, transparent []string, keywords []string) *ruleSet {
	rs := &ruleSet{
		nodes:       make(map[string]Category, len(nodes)+len(keywords)),
		context:     context,
		transparent: make(map[string]bool, len(transparent)),
		keywords:    make(map[string]bool, len(keywords)),
		contextual:  make(map[string]bool),
	}
	for _, kw := range keywords {
		rs.nodes[kw] = Keyword
		rs.keywords[kw] = true
	}
	for k, v := range nodes {
		rs.nodes[k] = v
	}
	for _, t := range transparent {
		rs.transparent[t] = true
	}
	for k := range context {
		if i := strings.LastIndexByte(k, '>'); i >= 0 {
			rs.contextual[k[i+1:]] = true
		}
	}
	return rs
}

var rules = map[grammar.Kind]*ruleSet{
	grammar.CFamily: cppRules,
	grammar.Markup:  htmlRules,
}

func rulesFor(k grammar.Kind) *ruleSet {
	return rules[k]
}

// Keywords returns the reserved words of kind, in no particular order.
func Keywords(k grammar.Kind) []string {
	rs := rulesFor(k)
	if rs == nil {
		return nil
	}
	out := make([]string, 0, len(rs.keywords))
	for kw := range rs.keywords {
		out = append(out, kw)
	}
	return out
}

// lookup classifies typ given its ancestors (outermost first).
func (rs *ruleSet) lookup(typ string, ancestors []string) (Category, bool) {
	if rs.contextual[typ] {
		var parent, grand string
		for i := len(ancestors) - 1; i >= 0; i-- {
			a := ancestors[i]
			if rs.transparent[a] {
				continue
			}
			if parent == "" {
				parent = a
				continue
			}
			grand = a
			break
		}
		if grand != "" {
			if c, ok := rs.context[grand+">"+parent+">"+typ]; ok {
				return c, true
			}
		}
		if parent != "" {
			if c, ok := rs.context[parent+">"+typ]; ok {
				return c, true
			}
		}
	}
	c, ok := rs.nodes[typ]
	return c, ok
}
