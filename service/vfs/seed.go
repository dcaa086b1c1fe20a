package vfs

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed
var seedFS embed.FS

// SeedEntry describes one default file
type SeedEntry struct {
	Path      string `yaml:"path"`
	Source    string `yaml:"source"`
	Protected bool   `yaml:"protected"`
	Content   string `yaml:"-"`
}

type seedManifest struct {
	Entries []*SeedEntry `yaml:"entries"`
}

// DefaultSeed returns the embedded default entries with their content
func DefaultSeed() ([]*SeedEntry, error) {
	data, err := seedFS.ReadFile("seed/seed.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read seed manifest: %w", err)
	}
	manifest := &seedManifest{}
	if err = yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to decode seed manifest: %w", err)
	}
	for _, item := range manifest.Entries {
		content, err := seedFS.ReadFile("seed/" + item.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %v: %w", item.Source, err)
		}
		item.Path = NormalizePath(item.Path)
		item.Content = string(content)
	}
	return manifest.Entries, nil
}
