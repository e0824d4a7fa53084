package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	// Ensure the aliases map is initialized
	if cfg.Highlight.Aliases == nil {
		cfg.Highlight.Aliases = make(map[string]string)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	// Use YAML round-trip for deep copy of serializable fields
	yamlBytes, err := c.ToYAML()
	if err != nil {
		// Fallback to manual deep copy on error
		return c.deepCopy()
	}

	clone, err := FromYAML(yamlBytes)
	if err != nil {
		// Fallback to manual deep copy on error
		return c.deepCopy()
	}

	// Copy CLI-only fields that aren't serialized to YAML
	c.copyCLIFields(clone)

	return clone
}

// copyCLIFields copies CLI-only fields (yaml:"-") to the target config.
func (c *Config) copyCLIFields(target *Config) {
	target.Format = c.Format
	target.Jobs = c.Jobs
	target.DryRun = c.DryRun
	target.NoBackups = c.NoBackups
}

// deepCopy creates a manual deep copy of the configuration.
// This is used as a fallback when YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	clone := &Config{
		Editor:    c.Editor.clone(),
		View:      c.View,    // ViewConfig only has value types
		Export:    c.Export,  // ExportConfig only has value types
		Backups:   c.Backups, // BackupsConfig only has value types
		Format:    c.Format,
		Jobs:      c.Jobs,
		DryRun:    c.DryRun,
		NoBackups: c.NoBackups,
	}

	// Deep copy the aliases map
	if c.Highlight.Aliases != nil {
		clone.Highlight.Aliases = make(map[string]string, len(c.Highlight.Aliases))
		maps.Copy(clone.Highlight.Aliases, c.Highlight.Aliases)
	}

	// Deep copy the ignore slice
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}

	return clone
}

// clone creates a deep copy of an EditorConfig, duplicating its pointer fields.
func (e EditorConfig) clone() EditorConfig {
	clone := e

	if e.UseSpacesForTabs != nil {
		v := *e.UseSpacesForTabs
		clone.UseSpacesForTabs = &v
	}
	if e.AutoIndent != nil {
		v := *e.AutoIndent
		clone.AutoIndent = &v
	}
	if e.WordWrap != nil {
		v := *e.WordWrap
		clone.WordWrap = &v
	}
	if e.ShowLineNumbers != nil {
		v := *e.ShowLineNumbers
		clone.ShowLineNumbers = &v
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
