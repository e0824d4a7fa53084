package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/inkwellco/inkwell/pkg/config"
	"github.com/inkwellco/inkwell/pkg/highlight"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "editor.tab_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown styles).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFormats lists valid export format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[string]bool{
	"markdown": true,
	"html":     true,
	"pdf":      true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// knownPageSizes lists valid PDF page sizes, keyed by lowercase name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownPageSizes = map[string]bool{
	"a3":      true,
	"a4":      true,
	"a5":      true,
	"letter":  true,
	"legal":   true,
	"tabloid": true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateEditor(cfg, result)
	validateView(cfg, result)
	validateExport(cfg, result)
	validateAliases(cfg, result)
	validateIgnorePatterns(cfg, result)

	// Validate backups.mode
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	// Validate CLI-level fields
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: markdown, html, pdf", cfg.Format),
		})
	}
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	return result
}

// validateEditor checks editor settings for errors.
func validateEditor(cfg *config.Config, result *ValidationResult) {
	if cfg.Editor.TabSize < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "editor.tab_size",
			Value:   cfg.Editor.TabSize,
			Message: "tab_size must be >= 0 (0 means default)",
		})
	}
	if cfg.Editor.HistoryLimit < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "editor.history_limit",
			Value:   cfg.Editor.HistoryLimit,
			Message: "history_limit must be >= 0 (0 means default)",
		})
	}
	if cfg.Editor.AutoSaveInterval < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "editor.auto_save_interval_seconds",
			Value:   cfg.Editor.AutoSaveInterval,
			Message: "auto_save_interval_seconds must be >= 0 (0 means default)",
		})
	}
}

// validateView checks view settings for errors.
func validateView(cfg *config.Config, result *ValidationResult) {
	if cfg.View.Theme != "" && !cfg.View.Theme.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "view.theme",
			Value:   cfg.View.Theme,
			Message: fmt.Sprintf("invalid theme %q; must be one of: system, light, dark", cfg.View.Theme),
		})
	}
	if cfg.View.Color != "" && !cfg.View.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "view.color",
			Value:   cfg.View.Color,
			Message: fmt.Sprintf("invalid colour mode %q; must be one of: auto, always, never", cfg.View.Color),
		})
	}
}

// validateExport checks export settings. An unknown chroma style is a
// warning rather than an error because export falls back to the default
// style at render time.
func validateExport(cfg *config.Config, result *ValidationResult) {
	if name := cfg.Export.HTMLStyle; name != "" {
		if _, ok := styles.Registry[name]; !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "export.html_style",
				Value:   name,
				Message: fmt.Sprintf("unknown style %q; the default style will be used", name),
			})
		}
	}

	if size := cfg.Export.PDFPageSize; size != "" && !knownPageSizes[strings.ToLower(size)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "export.pdf_page_size",
			Value:   size,
			Message: fmt.Sprintf("invalid page size %q; must be one of: A3, A4, A5, Letter, Legal, Tabloid", size),
		})
	}
}

// validateAliases checks that language aliases point at registered languages.
func validateAliases(cfg *config.Config, result *ValidationResult) {
	if len(cfg.Highlight.Aliases) == 0 {
		return
	}

	registry := highlight.NewRegistry()

	for tag, target := range cfg.Highlight.Aliases {
		if strings.TrimSpace(tag) == "" || strings.TrimSpace(target) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "highlight.aliases",
				Value:   tag,
				Message: "alias tags and targets must be non-empty",
			})
			continue
		}

		if _, ok := registry.Lookup(target); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "highlight.aliases." + tag,
				Value:   target,
				Message: fmt.Sprintf("unknown language %q; blocks tagged %q will render plain", target, tag),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the export format is valid.
func IsValidFormat(format string) bool {
	return knownFormats[format]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

// IsValidPageSize returns true if the PDF page size is valid.
func IsValidPageSize(size string) bool {
	return knownPageSizes[strings.ToLower(size)]
}
