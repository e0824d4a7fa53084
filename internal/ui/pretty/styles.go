// Package pretty renders documents, outlines, and search results for
// the terminal with Lipgloss styling.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/inkwellco/inkwell/pkg/highlight"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Document components
	Heading       lipgloss.Style
	HeadingMarker lipgloss.Style
	Paragraph     lipgloss.Style
	Quote         lipgloss.Style
	QuoteBar      lipgloss.Style
	Rule          lipgloss.Style
	ListBullet    lipgloss.Style
	CodeLang      lipgloss.Style

	// Code token styles, keyed off highlight.Style via CodeStyle.
	CodePlain   lipgloss.Style
	CodeKeyword lipgloss.Style
	CodeString  lipgloss.Style
	CodeNumber  lipgloss.Style
	CodeComment lipgloss.Style

	// Table components
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Search output
	FilePath    lipgloss.Style
	Location    lipgloss.Style
	MatchHit    lipgloss.Style
	Replacement lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Heading:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		HeadingMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Paragraph:     lipgloss.NewStyle(),
		Quote:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		QuoteBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Rule:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ListBullet:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		CodeLang:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		CodePlain:   lipgloss.NewStyle(),
		CodeKeyword: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		CodeString:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		CodeNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		CodeComment: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		FilePath:    lipgloss.NewStyle().Bold(true),
		Location:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		MatchHit:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Replacement: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Heading:        plain,
		HeadingMarker:  plain,
		Paragraph:      plain,
		Quote:          plain,
		QuoteBar:       plain,
		Rule:           plain,
		ListBullet:     plain,
		CodeLang:       plain,
		CodePlain:      plain,
		CodeKeyword:    plain,
		CodeString:     plain,
		CodeNumber:     plain,
		CodeComment:    plain,
		TableHeader:    plain,
		TableSeparator: plain,
		FilePath:       plain,
		Location:       plain,
		MatchHit:       plain,
		Replacement:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// CodeStyle maps a highlight style tag to its terminal rendering.
func (s *Styles) CodeStyle(style highlight.Style) lipgloss.Style {
	switch style {
	case highlight.StyleKeyword:
		return s.CodeKeyword
	case highlight.StyleString:
		return s.CodeString
	case highlight.StyleNumber:
		return s.CodeNumber
	case highlight.StyleComment:
		return s.CodeComment
	default:
		return s.CodePlain
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		// Check if output is a TTY
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
