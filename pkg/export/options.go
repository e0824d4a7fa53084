package export

import "github.com/inkwellco/inkwell/pkg/config"

// Options configures exporter behavior.
type Options struct {
	// Format specifies the output format.
	Format Format

	// Style is the chroma style name used for code blocks in HTML output.
	// Unknown names fall back to chroma's default style.
	Style string

	// PageSize is the PDF page size ("A4", "Letter", ...).
	PageSize string

	// Theme selects light or dark colours for HTML output. ThemeSystem is
	// resolved by the caller; exporters treat it as light.
	Theme config.Theme

	// TabSize is the column width tabs expand to in code blocks.
	TabSize int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Format:   FormatHTML,
		Style:    "github",
		PageSize: "A4",
		Theme:    config.ThemeLight,
		TabSize:  4,
	}
}

// effectiveTabSize returns the tab width to use, defaulting if unset.
func (o Options) effectiveTabSize() int {
	if o.TabSize <= 0 {
		return DefaultOptions().TabSize
	}
	return o.TabSize
}

// effectivePageSize returns the page size to use, defaulting if unset.
func (o Options) effectivePageSize() string {
	if o.PageSize == "" {
		return DefaultOptions().PageSize
	}
	return o.PageSize
}
