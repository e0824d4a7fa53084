package highlight

// builtins returns the rulesets every registry starts with. The set
// covers the languages that show up in ordinary Markdown documents;
// anything else falls back to plain styling.
func builtins() []*Ruleset {
	return []*Ruleset{
		{
			Name:    "go",
			Aliases: []string{"golang"},
			Keywords: words(
				"break", "case", "chan", "const", "continue", "default",
				"defer", "else", "fallthrough", "for", "func", "go", "goto",
				"if", "import", "interface", "map", "package", "range",
				"return", "select", "struct", "switch", "type", "var",
				"nil", "true", "false", "iota",
			),
			LineComments: []string{"//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true},
				{Char: '\'', Escape: true},
				{Char: '`', Multiline: true},
			},
		},
		{
			Name:    "python",
			Aliases: []string{"py", "python3"},
			Keywords: words(
				"False", "None", "True", "and", "as", "assert", "async",
				"await", "break", "class", "continue", "def", "del", "elif",
				"else", "except", "finally", "for", "from", "global", "if",
				"import", "in", "is", "lambda", "match", "nonlocal", "not",
				"or", "pass", "raise", "return", "try", "while", "with",
				"yield",
			),
			LineComments: []string{"#"},
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true, Triple: true, Multiline: true},
				{Char: '\'', Escape: true, Triple: true, Multiline: true},
				{Char: '"', Escape: true},
				{Char: '\'', Escape: true},
			},
		},
		{
			Name:    "javascript",
			Aliases: []string{"js", "jsx", "typescript", "ts", "node"},
			Keywords: words(
				"async", "await", "break", "case", "catch", "class", "const",
				"continue", "debugger", "default", "delete", "do", "else",
				"export", "extends", "finally", "for", "function", "if",
				"import", "in", "instanceof", "let", "new", "of", "return",
				"static", "super", "switch", "this", "throw", "try",
				"typeof", "var", "void", "while", "yield",
				"true", "false", "null", "undefined",
			),
			LineComments: []string{"//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true},
				{Char: '\'', Escape: true},
				{Char: '`', Escape: true, Multiline: true},
			},
		},
		{
			Name:    "rust",
			Aliases: []string{"rs"},
			Keywords: words(
				"as", "async", "await", "break", "const", "continue",
				"crate", "dyn", "else", "enum", "extern", "false", "fn",
				"for", "if", "impl", "in", "let", "loop", "match", "mod",
				"move", "mut", "pub", "ref", "return", "self", "Self",
				"static", "struct", "super", "trait", "true", "type",
				"unsafe", "use", "where", "while",
			),
			LineComments: []string{"//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
			// Single quotes are lifetimes more often than char
			// literals, so only double-quoted strings are styled.
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true, Multiline: true},
			},
		},
		{
			Name:    "c",
			Aliases: []string{"h", "cpp", "c++", "cc", "hpp"},
			Keywords: words(
				"auto", "break", "case", "char", "const", "continue",
				"default", "do", "double", "else", "enum", "extern",
				"float", "for", "goto", "if", "inline", "int", "long",
				"register", "restrict", "return", "short", "signed",
				"sizeof", "static", "struct", "switch", "typedef", "union",
				"unsigned", "void", "volatile", "while",
			),
			LineComments: []string{"//"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true},
				{Char: '\'', Escape: true},
			},
		},
		{
			Name:     "json",
			Keywords: words("true", "false", "null"),
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true},
			},
		},
		{
			Name:     "yaml",
			Aliases:  []string{"yml"},
			Keywords: words("true", "false", "null", "yes", "no"),
			LineComments: []string{
				"#",
			},
			CommentNeedsBoundary: true,
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true},
				{Char: '\''},
			},
		},
		{
			Name:    "bash",
			Aliases: []string{"sh", "shell", "zsh", "console"},
			Keywords: words(
				"if", "then", "else", "elif", "fi", "for", "while", "until",
				"do", "done", "case", "esac", "in", "function", "select",
				"time", "return", "exit", "local", "export", "readonly",
				"declare", "source",
			),
			LineComments:         []string{"#"},
			CommentNeedsBoundary: true,
			Quotes: []QuoteSpec{
				{Char: '"', Escape: true},
				{Char: '\''},
			},
		},
		{
			Name:     "sql",
			FoldCase: true,
			Keywords: words(
				"select", "from", "where", "insert", "into", "values",
				"update", "set", "delete", "create", "table", "index",
				"view", "drop", "alter", "join", "left", "right", "inner",
				"outer", "cross", "on", "as", "and", "or", "not", "null",
				"primary", "key", "foreign", "references", "order", "by",
				"group", "having", "limit", "offset", "distinct", "union",
				"all", "exists", "between", "like", "in", "is", "asc",
				"desc", "default", "constraint", "unique",
			),
			LineComments: []string{"--"},
			BlockStart:   "/*",
			BlockEnd:     "*/",
			Quotes: []QuoteSpec{
				{Char: '\''},
			},
		},
	}
}
