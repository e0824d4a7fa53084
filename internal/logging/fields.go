// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Document fields.
	FieldDocVersion = "doc_version"
	FieldBlocks     = "blocks"
	FieldBytes      = "bytes"
	FieldWords      = "words"
	FieldLanguage   = "language"

	// Editing fields.
	FieldWindowStart = "window_start"
	FieldWindowEnd   = "window_end"
	FieldDuration    = "duration"
	FieldInterval    = "interval"

	// Search fields.
	FieldPattern      = "pattern"
	FieldMatches      = "matches"
	FieldReplacements = "replacements"

	// Export fields.
	FieldFormat = "format"
	FieldTheme  = "theme"
	FieldJobs   = "jobs"

	// Version fields.
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
	FieldGoVersion = "go"
	FieldPlatform  = "platform"
)
