// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
//
//	id: bridges-intro
//	name: Bridges intro
//	grid: |
//	  ooo ooo B00 ooo
//	  PPP s00 b00 ggg
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Grid     string            `yaml:"grid"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level is a level file decoded into its text grid.
type Level struct {
	ID       string
	Name     string
	Grid     string
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(yl.ID) == "" {
		return Level{}, fmt.Errorf("yaml level: missing id")
	}
	if strings.TrimSpace(yl.Grid) == "" {
		return Level{}, fmt.Errorf("yaml level %s: missing grid", yl.ID)
	}
	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	return Level{ID: yl.ID, Name: name, Grid: yl.Grid, Metadata: yl.Metadata}, nil
}

// ParseText wraps a raw grid file. The id is taken from the file name.
func ParseText(id string, data []byte) (Level, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Level{}, fmt.Errorf("text level %s: empty file", id)
	}
	return Level{ID: id, Name: id, Grid: string(data)}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}
