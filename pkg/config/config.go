// Package config defines core configuration types for inkwell.
// These types are pure data structures with no dependency on the loader,
// so frontends can embed them without pulling in discovery or validation.
package config

import "time"

// Theme selects the preview colour scheme.
type Theme string

const (
	// ThemeSystem follows the host platform's light/dark preference.
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// IsValid returns true if the theme is valid.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	default:
		return false
	}
}

// ColorMode controls when terminal output uses colour.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the colour mode is valid.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// EditorConfig holds buffer and editing behaviour settings.
//
// The boolean toggles that default to true are pointers so that loaders
// can tell "absent" apart from "explicitly disabled" when merging.
type EditorConfig struct {
	// TabSize is the number of columns a tab occupies.
	TabSize int `yaml:"tab_size"`

	// UseSpacesForTabs inserts spaces when the tab key is pressed.
	UseSpacesForTabs *bool `yaml:"use_spaces_for_tabs"`

	// AutoIndent carries the previous line's indentation to new lines.
	AutoIndent *bool `yaml:"auto_indent"`

	// WordWrap soft-wraps long lines in editor and preview panes.
	WordWrap *bool `yaml:"word_wrap"`

	// ShowLineNumbers displays a line number gutter.
	ShowLineNumbers *bool `yaml:"show_line_numbers"`

	// HistoryLimit bounds the undo stack (0 = default).
	HistoryLimit int `yaml:"history_limit"`

	// AutoSave enables periodic background saves.
	AutoSave bool `yaml:"auto_save"`

	// AutoSaveInterval is the seconds between autosave passes.
	AutoSaveInterval int `yaml:"auto_save_interval_seconds"`
}

// SpacesForTabs reports whether tab presses insert spaces, defaulting to true.
func (e EditorConfig) SpacesForTabs() bool {
	return boolOr(e.UseSpacesForTabs, true)
}

// AutoIndentEnabled reports whether auto-indent is on, defaulting to true.
func (e EditorConfig) AutoIndentEnabled() bool {
	return boolOr(e.AutoIndent, true)
}

// WrapEnabled reports whether word wrap is on, defaulting to true.
func (e EditorConfig) WrapEnabled() bool {
	return boolOr(e.WordWrap, true)
}

// LineNumbersEnabled reports whether the gutter is shown, defaulting to true.
func (e EditorConfig) LineNumbersEnabled() bool {
	return boolOr(e.ShowLineNumbers, true)
}

// AutoSaveEvery returns the autosave interval as a duration.
func (e EditorConfig) AutoSaveEvery() time.Duration {
	return time.Duration(e.AutoSaveInterval) * time.Second
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func boolPtr(b bool) *bool {
	return &b
}

// ViewConfig holds preview rendering settings.
type ViewConfig struct {
	// Theme selects the preview colour scheme.
	Theme Theme `yaml:"theme"`

	// Color controls when terminal output uses colour.
	Color ColorMode `yaml:"color"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	// HTMLStyle is the chroma style used for code blocks in HTML output.
	HTMLStyle string `yaml:"html_style"`

	// PDFPageSize is the page size for PDF output ("A4", "Letter", ...).
	PDFPageSize string `yaml:"pdf_page_size"`
}

// HighlightConfig holds syntax highlighting settings.
type HighlightConfig struct {
	// Aliases maps custom fence info strings to registered language names,
	// e.g. "golang: go" or "shell: bash".
	Aliases map[string]string `yaml:"aliases"`
}

// BackupsConfig controls backup behaviour when writing files in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for inkwell.
type Config struct {
	// Editor configures buffer and editing behaviour.
	Editor EditorConfig `yaml:"editor"`

	// View configures preview rendering.
	View ViewConfig `yaml:"view"`

	// Export configures document export.
	Export ExportConfig `yaml:"export"`

	// Highlight configures syntax highlighting.
	Highlight HighlightConfig `yaml:"highlight"`

	// Backups configures backup behaviour when writing files.
	Backups BackupsConfig `yaml:"backups"`

	// Ignore contains glob patterns for files skipped during discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format is the export format selected on the command line.
	Format string `yaml:"-"`

	// Jobs specifies the number of parallel export workers.
	Jobs int `yaml:"-"`

	// DryRun previews replacements without writing files.
	DryRun bool `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize:          4,
			UseSpacesForTabs: boolPtr(true),
			AutoIndent:       boolPtr(true),
			WordWrap:         boolPtr(true),
			ShowLineNumbers:  boolPtr(true),
			HistoryLimit:     1000,
			AutoSave:         false,
			AutoSaveInterval: 30,
		},
		View: ViewConfig{
			Theme: ThemeSystem,
			Color: ColorAuto,
		},
		Export: ExportConfig{
			HTMLStyle:   "github",
			PDFPageSize: "A4",
		},
		Highlight: HighlightConfig{
			Aliases: make(map[string]string),
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Jobs: 0, // 0 means use GOMAXPROCS
	}
}
