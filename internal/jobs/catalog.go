package jobs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/me/patrol/internal/engine"
)

// Catalog is the YAML-configured set of recurring jobs registered at
// bootstrap. The catalog supplies defaults; persisted metadata, when
// present, wins over it after a restart.
type Catalog struct {
	Jobs []Spec `yaml:"jobs"`
}

// Spec describes one recurring job.
type Spec struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	IntervalMinutes int    `yaml:"interval_minutes"`
	Type            string `yaml:"type"`
	Target          string `yaml:"target,omitempty"`
	TimeoutSeconds  int    `yaml:"timeout_seconds,omitempty"`
}

// LoadCatalog reads and validates the catalog at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks the structural rules every entry must satisfy.
// Type-specific rules (e.g. http_collect requiring a target) are
// enforced by the runner that builds the body.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Jobs))
	for i, spec := range c.Jobs {
		if spec.ID == "" {
			return fmt.Errorf("catalog entry %d: id is required", i)
		}
		if seen[spec.ID] {
			return fmt.Errorf("catalog entry %d: duplicate id %q", i, spec.ID)
		}
		seen[spec.ID] = true

		if spec.Name == "" {
			return fmt.Errorf("catalog entry %q: name is required", spec.ID)
		}
		if spec.IntervalMinutes <= 0 {
			return fmt.Errorf("catalog entry %q: interval_minutes must be positive, got %d", spec.ID, spec.IntervalMinutes)
		}
		if spec.IntervalMinutes > engine.MaxIntervalMinutes {
			return fmt.Errorf("catalog entry %q: interval_minutes must be at most %d, got %d", spec.ID, engine.MaxIntervalMinutes, spec.IntervalMinutes)
		}
		if spec.Type == "" {
			return fmt.Errorf("catalog entry %q: type is required", spec.ID)
		}
	}
	return nil
}
