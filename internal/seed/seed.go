// Package seed loads the activity set the registry is initialized with.
package seed

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mergington/activities/internal/activities"
)

// SeedFile is the root structure for activities.yaml
type SeedFile struct {
	Activities []ActivityDef `yaml:"activities"`
}

// ActivityDef defines a single activity in YAML
type ActivityDef struct {
	Name            string   `yaml:"name"`             // Unique activity name, e.g. "Chess Club"
	Description     string   `yaml:"description"`      // Short summary
	Schedule        string   `yaml:"schedule"`         // Free-form meeting times
	MaxParticipants int      `yaml:"max_participants"` // Advertised capacity (informational)
	Participants    []string `yaml:"participants"`     // Pre-registered emails, in signup order
}

// Load parses the bundled activities.yaml into registry-ready activities.
func Load() ([]*activities.Activity, error) {
	return LoadFS(FS(), "activities.yaml")
}

// LoadFile parses an operator-supplied YAML file with the bundled schema.
func LoadFile(path string) ([]*activities.Activity, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parse(path, content)
}

// LoadFS parses the activity set at path within fsys.
func LoadFS(fsys fs.FS, path string) ([]*activities.Activity, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parse(path, content)
}

func parse(path string, content []byte) ([]*activities.Activity, error) {
	var file SeedFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(file.Activities) == 0 {
		return nil, fmt.Errorf("no activities found in %s", path)
	}

	seen := make(map[string]bool, len(file.Activities))
	acts := make([]*activities.Activity, 0, len(file.Activities))
	for _, def := range file.Activities {
		act, err := buildActivityFromDef(def)
		if err != nil {
			return nil, fmt.Errorf("activity %q in %s: %w", def.Name, path, err)
		}
		if seen[act.Name] {
			return nil, fmt.Errorf("duplicate activity %q in %s", act.Name, path)
		}
		seen[act.Name] = true
		acts = append(acts, act)
	}

	return acts, nil
}

// buildActivityFromDef converts an ActivityDef into a validated Activity.
func buildActivityFromDef(def ActivityDef) (*activities.Activity, error) {
	act := &activities.Activity{
		Name:            def.Name,
		Description:     def.Description,
		Schedule:        def.Schedule,
		MaxParticipants: def.MaxParticipants,
		Participants:    def.Participants,
	}
	if act.Participants == nil {
		act.Participants = []string{}
	}

	if err := act.Validate(); err != nil {
		return nil, err
	}

	return act, nil
}
