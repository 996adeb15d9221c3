package highlight

import (
	"fmt"
	"strings"
)

// Category is the presentation role assigned to a span of text.
// The zero value, PlainText, means "no override".
type Category int

const (
	PlainText Category = iota
	Keyword
	Type
	String
	Comment
	Number
	Function
	Variable
	Parameter
	Operator
	Punctuation
	Preprocessor
	Namespace
	ClassName

	numCategories
)

var categoryNames = [numCategories]string{
	PlainText:    "plain",
	Keyword:      "keyword",
	Type:         "type",
	String:       "string",
	Comment:      "comment",
	Number:       "number",
	Function:     "function",
	Variable:     "variable",
	Parameter:    "parameter",
	Operator:     "operator",
	Punctuation:  "punctuation",
	Preprocessor: "preprocessor",
	Namespace:    "namespace",
	ClassName:    "class_name",
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := PlainText; c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory is the inverse of Category.String. It also accepts
// "classname" and "plaintext".
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "classname":
		return ClassName, nil
	case "plaintext", "":
		return PlainText, nil
	}
	for c, n := range categoryNames {
		if n == name {
			return Category(c), nil
		}
	}
	return PlainText, fmt.Errorf("highlight: unknown category %q", s)
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ByteRange is a classified half-open interval [Start, End) of source bytes.
type ByteRange struct {
	Start    int
	End      int
	Category Category
}

// Range is a classified span in character (code point) offsets, ready to be
// applied by the host.
type Range struct {
	Start    int      `json:"start"`
	Length   int      `json:"length"`
	Category Category `json:"category"`
}

// End returns the exclusive end offset of r.
func (r Range) End() int { return r.Start + r.Length }
