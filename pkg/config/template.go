package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every setting with its default value and documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# inkwell configuration
# See: https://github.com/inkwellco/inkwell

# Editor behaviour
editor:
  tab_size: 4
  # auto_save: false
  # auto_save_interval_seconds: 30

# Preview colour scheme: system, light, or dark
# view:
#   theme: system

# Document export
# export:
#   html_style: github
#   pdf_page_size: A4

# Map custom fence info strings to registered languages
# highlight:
#   aliases:
#     golang: go
#     shell: bash
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every setting documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# inkwell configuration - Full Template
# See: https://github.com/inkwellco/inkwell
#
# This template lists every setting with its default value.
# Settings you leave out keep their defaults.

# Editor behaviour
editor:
  # Columns per tab stop
  tab_size: 4

  # Insert spaces when the tab key is pressed
  use_spaces_for_tabs: true

  # Carry the previous line's indentation to new lines
  auto_indent: true

  # Soft-wrap long lines in editor and preview panes
  word_wrap: true

  # Show the line number gutter
  show_line_numbers: true

  # Undo groups retained before the oldest are discarded
  history_limit: 1000

  # Save the document in the background while editing
  auto_save: false
  auto_save_interval_seconds: 30

# Preview rendering
view:
  # Colour scheme: system, light, or dark
  theme: system

  # Terminal colour: auto, always, or never
  color: auto

# Document export
export:
  # Style for code blocks in HTML output (any chroma style name)
  html_style: github

  # Page size for PDF output: A3, A4, A5, Letter, Legal, or Tabloid
  pdf_page_size: A4

# Syntax highlighting
highlight:
  # Map custom fence info strings to registered languages
  # aliases:
  #   golang: go
  #   shell: bash
  aliases: {}

# File patterns skipped during discovery (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Backups when writing files in place
backups:
  enabled: true
  mode: sidecar
`)

	return buf.Bytes()
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := map[string]any{
		"editor": map[string]any{
			"tab_size":                   4,
			"use_spaces_for_tabs":        true,
			"auto_indent":                true,
			"word_wrap":                  true,
			"show_line_numbers":          true,
			"history_limit":              1000,
			"auto_save":                  false,
			"auto_save_interval_seconds": 30,
		},
		"view": map[string]any{
			"theme": "system",
			"color": "auto",
		},
		"export": map[string]any{
			"html_style":    "github",
			"pdf_page_size": "A4",
		},
		"highlight": map[string]any{
			"aliases": map[string]any{},
		},
		"backups": map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# inkwell configuration
# See: https://github.com/inkwellco/inkwell`
}
