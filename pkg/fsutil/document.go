package fsutil

import (
	"path/filepath"
	"strings"
)

// markdownExts are the file extensions treated as Markdown documents.
var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkd":      true,
	".mkdn":     true,
	".mdwn":     true,
}

// IsMarkdownFile reports whether path carries a Markdown extension.
func IsMarkdownFile(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SanitizeFilename replaces characters that are unsafe in file names
// on common filesystems with underscores.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
}

// AutosavePath returns the hidden sidecar path auto-save writes to:
// ".name.autosave" next to the document. The user's own file is only
// written by an explicit save.
func AutosavePath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	return filepath.Join(dir, "."+base+".autosave")
}
