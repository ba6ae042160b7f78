// Package policy loads the static list of entity names excluded from
// every game: names known to break question generation or that should
// never be shown to players.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Denylist []string `yaml:"denylist"`
}

// Known dead ends in the graph data. Kept small; operational exclusions
// belong in the denylist file.
var defaults = []string{
	"Michel Barnier",
}

// Load reads the denylist from path. An empty path returns the built-in
// defaults.
func Load(path string) ([]string, error) {
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading denylist: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing denylist: %w", err)
	}
	return f.Denylist, nil
}
