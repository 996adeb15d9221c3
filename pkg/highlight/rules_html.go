package highlight

var htmlRules = newRuleSet(
	map[string]Category{
		"tag_name":               Keyword,
		"erroneous_end_tag_name": Keyword,
		"attribute_name":         Type,
		"attribute_value":        String,
		"quoted_attribute_value": String,
		"comment":                Comment,
		"doctype":                Preprocessor,
		"entity":                 Number,

		"<":  Punctuation,
		">":  Punctuation,
		"</": Punctuation,
		"/>": Punctuation,
		"<!": Punctuation,
		"=":  Operator,
	},
	nil,
	nil,
	// Markup has no reserved words; tag names come from the tree.
	nil,
)
