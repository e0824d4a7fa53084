package configloader

import "github.com/inkwellco/inkwell/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer toggles: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base
	result := *base

	result.Editor = mergeEditor(base.Editor, override.Editor)

	if override.View.Theme != "" {
		result.View.Theme = override.View.Theme
	}
	if override.View.Color != "" {
		result.View.Color = override.View.Color
	}

	if override.Export.HTMLStyle != "" {
		result.Export.HTMLStyle = override.Export.HTMLStyle
	}
	if override.Export.PDFPageSize != "" {
		result.Export.PDFPageSize = override.Export.PDFPageSize
	}

	// Maps: deep merge
	result.Highlight.Aliases = mergeAliases(base.Highlight.Aliases, override.Highlight.Aliases)

	// Backups: merge individual fields
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	// For Enabled, false is the zero value, so a config file can switch
	// backups on but cannot switch them off again at a lower layer.
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Slices: override replaces base entirely if non-nil
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	// CLI-only fields
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	return &result
}

// mergeEditor merges editor settings field by field.
// The toggles are pointers, so an explicit false in override wins over base.
func mergeEditor(base, override config.EditorConfig) config.EditorConfig {
	result := base

	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.UseSpacesForTabs != nil {
		result.UseSpacesForTabs = override.UseSpacesForTabs
	}
	if override.AutoIndent != nil {
		result.AutoIndent = override.AutoIndent
	}
	if override.WordWrap != nil {
		result.WordWrap = override.WordWrap
	}
	if override.ShowLineNumbers != nil {
		result.ShowLineNumbers = override.ShowLineNumbers
	}
	if override.HistoryLimit != 0 {
		result.HistoryLimit = override.HistoryLimit
	}
	// AutoSave defaults to false, so only an explicit true means anything here.
	if override.AutoSave {
		result.AutoSave = override.AutoSave
	}
	if override.AutoSaveInterval != 0 {
		result.AutoSaveInterval = override.AutoSaveInterval
	}

	return result
}

// mergeAliases performs a deep merge of language alias maps.
// Both maps are iterated, with override's values taking precedence.
func mergeAliases(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	for key, val := range base {
		result[key] = val
	}
	for key, val := range override {
		result[key] = val
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
