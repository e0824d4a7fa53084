// Package langdetect guesses the language of fenced code blocks that
// carry no info tag, so the highlighter can still pick a ruleset.
// Detection combines three strategies in order of reliability:
// shebang lines, cheap structural patterns, and go-enry's Bayesian
// classifier over a fixed candidate set.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no strategy produces a confident match. It
// is deliberately not a registered highlight language, so unresolved
// blocks fall back to plain styling.
const Unknown = "text"

// classifierCandidates bounds the Bayesian classifier to languages the
// highlighter has rulesets for, plus near neighbours it tends to
// confuse them with.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Rust", "C", "C++", "SQL", "JSON", "YAML", "Markdown",
}

// Detect returns a lowercase language tag for a code sample, or
// Unknown. Tags line up with the highlight registry's names and
// aliases, so a confident detection styles immediately.
func Detect(sample string) string {
	if strings.TrimSpace(sample) == "" {
		return Unknown
	}
	data := []byte(sample)

	if lang, safe := enry.GetLanguageByShebang(data); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(sample) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(data, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Unknown
}

// patterns are structural checks ordered most to least specific. They
// run before the classifier because one strong marker, like a package
// clause or an #include, beats token statistics.
var patterns = []struct {
	lang  string
	match func(string) bool
}{
	{"go", isGo},
	{"c", isC},
	{"rust", isRust},
	{"python", isPython},
	{"json", isJSON},
	{"sql", isSQL},
	{"javascript", isJavaScript},
	{"yaml", isYAML},
}

func isGo(s string) bool {
	if strings.HasPrefix(strings.TrimSpace(s), "package ") {
		return true
	}
	return strings.Contains(s, "func ") && strings.Contains(s, ":=")
}

func isC(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "#include")
}

func isRust(s string) bool {
	return strings.Contains(s, "fn main()") ||
		strings.Contains(s, "println!") ||
		strings.Contains(s, "let mut ")
}

func isPython(s string) bool {
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

func isJSON(s string) bool {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "{") && !strings.HasPrefix(t, "[") {
		return false
	}
	return strings.Contains(t, `"`)
}

func isSQL(s string) bool {
	t := strings.ToUpper(strings.TrimSpace(s))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(t, kw) {
			return true
		}
	}
	return false
}

func isJavaScript(s string) bool {
	if strings.Contains(s, "console.log") {
		return true
	}
	decl := strings.Contains(s, "const ") || strings.Contains(s, "let ")
	return decl && (strings.Contains(s, "=>") || strings.Contains(s, "function "))
}

// isYAML counts top-level "key: value" pairs and list items; two or
// more of them with no code punctuation reads as YAML.
func isYAML(s string) bool {
	keys := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "- ") {
			keys++
			continue
		}
		if i := strings.Index(line, ": "); i > 0 && !strings.ContainsAny(line[:i], `({"`) {
			keys++
		}
	}
	return keys >= 2
}

// normalize maps enry's display names onto highlight registry tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
