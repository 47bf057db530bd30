package contract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arjaygg/teampulse/schema"
)

// rosterFile is the on-disk shape of a roster YAML file.
type rosterFile struct {
	Members []rosterEntry `yaml:"members"`
}

type rosterEntry struct {
	DisplayName string `yaml:"name"`
	Email       string `yaml:"email"`
	Role        string `yaml:"role"`
	Active      *bool  `yaml:"active"` // nil means active
}

// LoadRoster reads a team roster from a YAML file. Entries without an
// explicit active flag are treated as active.
func LoadRoster(path string) ([]schema.TeamMember, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid roster YAML: %w", err)
	}
	if len(file.Members) == 0 {
		return nil, fmt.Errorf("roster has no members")
	}

	seen := make(map[string]bool, len(file.Members))
	members := make([]schema.TeamMember, 0, len(file.Members))
	for i, entry := range file.Members {
		if entry.DisplayName == "" {
			return nil, fmt.Errorf("roster member %d has no name", i+1)
		}
		if seen[entry.DisplayName] {
			return nil, fmt.Errorf("duplicate roster member %q", entry.DisplayName)
		}
		seen[entry.DisplayName] = true

		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		members = append(members, schema.TeamMember{
			DisplayName: entry.DisplayName,
			Email:       entry.Email,
			Role:        entry.Role,
			Active:      active,
		})
	}
	return members, nil
}
