package highlight

// Reserved words of C and C++. Node types with the same spelling are the
// grammar's keyword tokens.
var cppKeywords = []string{
	"alignas", "alignof", "asm", "auto", "break", "case", "catch", "class",
	"co_await", "co_return", "co_yield", "concept", "const", "const_cast",
	"consteval", "constexpr", "constinit", "continue", "decltype", "default",
	"delete", "do", "dynamic_cast", "else", "enum", "explicit", "export",
	"extern", "false", "final", "for", "friend", "goto", "if", "inline",
	"mutable", "namespace", "new", "noexcept", "nullptr", "operator",
	"override", "private", "protected", "public", "register",
	"reinterpret_cast", "requires", "return", "sizeof", "static",
	"static_assert", "static_cast", "struct", "switch", "template", "this",
	"thread_local", "throw", "true", "try", "typedef", "typeid", "typename",
	"union", "using", "virtual", "volatile", "while",
}

var cppRules = newRuleSet(
	map[string]Category{
		// types
		"primitive_type":       Type,
		"type_identifier":      Type,
		"sized_type_specifier": Type,
		"int":                  Type,
		"char":                 Type,
		"float":                Type,
		"double":               Type,
		"bool":                 Type,
		"void":                 Type,
		"long":                 Type,
		"short":                Type,
		"signed":               Type,
		"unsigned":             Type,
		"wchar_t":              Type,
		"char8_t":              Type,
		"char16_t":             Type,
		"char32_t":             Type,
		"size_t":               Type,

		// literals
		"string_literal":     String,
		"char_literal":       String,
		"raw_string_literal": String,
		"system_lib_string":  String,
		"escape_sequence":    String,
		"number_literal":     Number,
		"integer_literal":    Number,
		"float_literal":      Number,
		"hex_literal":        Number,
		"octal_literal":      Number,
		"binary_literal":     Number,

		"comment":       Comment,
		"line_comment":  Comment,
		"block_comment": Comment,

		// single-line directives and directive tokens
		"preproc_include":      Preprocessor,
		"preproc_def":          Preprocessor,
		"preproc_function_def": Preprocessor,
		"preproc_call":         Preprocessor,
		"preproc_directive":    Preprocessor,
		"#include":             Preprocessor,
		"#define":              Preprocessor,
		"#if":                  Preprocessor,
		"#ifdef":               Preprocessor,
		"#ifndef":              Preprocessor,
		"#else":                Preprocessor,
		"#elif":                Preprocessor,
		"#elifdef":             Preprocessor,
		"#elifndef":            Preprocessor,
		"#endif":               Preprocessor,

		"operator_name":   Function,
		"destructor_name": Function,

		"namespace_identifier": Namespace,

		"identifier":           Variable,
		"field_identifier":     Variable,
		"statement_identifier": Variable,

		// operators
		"=": Operator, "+": Operator, "-": Operator, "*": Operator,
		"/": Operator, "%": Operator, "++": Operator, "--": Operator,
		"+=": Operator, "-=": Operator, "*=": Operator, "/=": Operator,
		"%=": Operator, "==": Operator, "!=": Operator, "<": Operator,
		">": Operator, "<=": Operator, ">=": Operator, "<=>": Operator,
		"&&": Operator, "||": Operator, "!": Operator, "&": Operator,
		"|": Operator, "^": Operator, "~": Operator, "<<": Operator,
		">>": Operator, "<<=": Operator, ">>=": Operator, "&=": Operator,
		"|=": Operator, "^=": Operator, "->": Operator, ".": Operator,
		"::": Operator, "?": Operator, ":": Operator, "...": Operator,
		"->*": Operator, ".*": Operator,

		// punctuation
		"{": Punctuation, "}": Punctuation, "(": Punctuation, ")": Punctuation,
		"[": Punctuation, "]": Punctuation, ";": Punctuation, ",": Punctuation,
	},
	map[string]Category{
		"function_declarator>identifier":                    Function,
		"function_declarator>field_identifier":              Function,
		"call_expression>identifier":                        Function,
		"call_expression>field_expression>field_identifier": Function,
		"template_method>field_identifier":                  Function,

		"class_specifier>type_identifier":  ClassName,
		"struct_specifier>type_identifier": ClassName,
		"union_specifier>type_identifier":  ClassName,
		"enum_specifier>type_identifier":   ClassName,

		"namespace_definition>identifier":           Namespace,
		"namespace_definition>namespace_identifier": Namespace,
		"namespace_alias_definition>identifier":     Namespace,

		"parameter_declaration>identifier":          Parameter,
		"optional_parameter_declaration>identifier": Parameter,
		"variadic_parameter_declaration>identifier": Parameter,

		"preproc_def>identifier":          Preprocessor,
		"preproc_function_def>identifier": Preprocessor,
		"preproc_ifdef>identifier":        Preprocessor,
	},
	[]string{
		"pointer_declarator",
		"reference_declarator",
		"array_declarator",
		"parenthesized_declarator",
		"qualified_identifier",
		"template_function",
		"variadic_declarator",
	},
	cppKeywords,
)
