package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/inkwellco/inkwell/pkg/config"
)

// envVarPrefix is the prefix for all inkwell environment variables.
const envVarPrefix = "INKWELL_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeMap
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"THEME":              {field: "view.theme", typ: envTypeString},
	"COLOR":              {field: "view.color", typ: envTypeString},
	"TAB_SIZE":           {field: "editor.tab_size", typ: envTypeInt},
	"HISTORY_LIMIT":      {field: "editor.history_limit", typ: envTypeInt},
	"AUTO_SAVE":          {field: "editor.auto_save", typ: envTypeBool},
	"AUTO_SAVE_INTERVAL": {field: "editor.auto_save_interval_seconds", typ: envTypeInt},
	"HTML_STYLE":         {field: "export.html_style", typ: envTypeString},
	"PDF_PAGE_SIZE":      {field: "export.pdf_page_size", typ: envTypeString},
	"ALIASES":            {field: "highlight.aliases", typ: envTypeMap},
	"BACKUPS_ENABLED":    {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":       {field: "backups.mode", typ: envTypeString},
	"IGNORE":             {field: "ignore", typ: envTypeSlice},
	"FORMAT":             {field: "format", typ: envTypeString},
	"JOBS":               {field: "jobs", typ: envTypeInt},
	"DRY_RUN":            {field: "dry_run", typ: envTypeBool},
	"NO_BACKUPS":         {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with INKWELL_ (e.g., INKWELL_THEME).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	case envTypeMap:
		pairs, err := parseMapValue(value, envVar)
		if err != nil {
			return err
		}
		return setMapField(cfg, mapping.field, pairs)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseMapValue parses comma-separated key=value pairs into a map.
func parseMapValue(value, envVar string) (map[string]string, error) {
	result := make(map[string]string)
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		key, val, found := strings.Cut(trimmed, "=")
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if !found || key == "" || val == "" {
			return nil, fmt.Errorf("invalid pair %q for %s (expected tag=language)", trimmed, envVar)
		}
		result[key] = val
	}
	return result, nil
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "view.theme":
		cfg.View.Theme = config.Theme(value)
	case "view.color":
		cfg.View.Color = config.ColorMode(value)
	case "export.html_style":
		cfg.Export.HTMLStyle = value
	case "export.pdf_page_size":
		cfg.Export.PDFPageSize = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "format":
		cfg.Format = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "editor.auto_save":
		cfg.Editor.AutoSave = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "dry_run":
		cfg.DryRun = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "editor.tab_size":
		cfg.Editor.TabSize = value
	case "editor.history_limit":
		cfg.Editor.HistoryLimit = value
	case "editor.auto_save_interval_seconds":
		cfg.Editor.AutoSaveInterval = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// setMapField sets a map field on the config by field path.
func setMapField(cfg *config.Config, field string, value map[string]string) error {
	switch field {
	case "highlight.aliases":
		if cfg.Highlight.Aliases == nil {
			cfg.Highlight.Aliases = make(map[string]string, len(value))
		}
		for k, v := range value {
			cfg.Highlight.Aliases[k] = v
		}
	default:
		return fmt.Errorf("unknown map field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"INKWELL_THEME":              "Preview colour scheme: system, light, or dark",
		"INKWELL_COLOR":              "Terminal colour: auto, always, or never",
		"INKWELL_TAB_SIZE":           "Columns per tab stop",
		"INKWELL_HISTORY_LIMIT":      "Undo groups retained (0 = default)",
		"INKWELL_AUTO_SAVE":          "Enable background saves: true or false",
		"INKWELL_AUTO_SAVE_INTERVAL": "Seconds between autosave passes",
		"INKWELL_HTML_STYLE":         "Code block style for HTML export",
		"INKWELL_PDF_PAGE_SIZE":      "Page size for PDF export (A4, Letter, ...)",
		"INKWELL_ALIASES":            "Comma-separated tag=language pairs (e.g. golang=go)",
		"INKWELL_BACKUPS_ENABLED":    "Enable backups when writing: true or false",
		"INKWELL_BACKUPS_MODE":       "Backup mode: sidecar or none",
		"INKWELL_IGNORE":             "Comma-separated list of ignore patterns",
		"INKWELL_FORMAT":             "Export format: markdown, html, or pdf",
		"INKWELL_JOBS":               "Number of parallel workers (0 = auto)",
		"INKWELL_DRY_RUN":            "Preview replacements without writing: true or false",
		"INKWELL_NO_BACKUPS":         "Disable backups: true or false",
	}
}
