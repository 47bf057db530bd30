package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoster(t *testing.T) {
	path := writeRoster(t, `
members:
  - name: Jordan Rivera
    email: jordan@example.com
    role: Engineer
  - name: Sam Taylor
    active: false
  - name: Riley Chen
    active: true
`)

	members, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, members, 3)

	assert.Equal(t, "Jordan Rivera", members[0].DisplayName)
	assert.Equal(t, "jordan@example.com", members[0].Email)
	assert.Equal(t, "Engineer", members[0].Role)
	assert.True(t, members[0].Active, "members without an explicit flag default to active")

	assert.False(t, members[1].Active)
	assert.True(t, members[2].Active)
}

func TestLoadRosterErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"empty roster", "members: []", "no members"},
		{"unnamed member", "members:\n  - email: x@example.com", "has no name"},
		{"duplicate member", "members:\n  - name: Jordan\n  - name: Jordan", "duplicate"},
		{"invalid yaml", "members: [", "invalid roster YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRoster(writeRoster(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	_, err := LoadRoster(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err, "a missing roster file should surface the read error")
}
