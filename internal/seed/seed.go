// Package seed loads the mock data the console starts with.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var fixtures embed.FS

// Load decodes the fixture file name (e.g. "assets.yaml") into out.
func Load(name string, out any) error {
	data, err := fixtures.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("seed: decode %s: %w", name, err)
	}
	return nil
}

// Files lists the embedded fixture files.
func Files() ([]string, error) {
	entries, err := fixtures.ReadDir("data")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
