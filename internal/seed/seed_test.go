package seed

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

// createSeedFS wraps YAML content in an activities.yaml file
func createSeedFS(yamlContent string) fstest.MapFS {
	return fstest.MapFS{
		"activities.yaml": &fstest.MapFile{
			Data: []byte(yamlContent),
		},
	}
}

func TestLoad_BundledSeed(t *testing.T) {
	acts, err := Load()
	require.NoError(t, err)
	require.Len(t, acts, 9)

	// Spot-check the first record in full
	chess := acts[0]
	require.Equal(t, "Chess Club", chess.Name)
	require.Equal(t, "Learn strategies and compete in chess tournaments", chess.Description)
	require.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	require.Equal(t, 12, chess.MaxParticipants)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestLoad_BundledSeedReferenceValues(t *testing.T) {
	acts, err := Load()
	require.NoError(t, err)

	type ref struct {
		capacity     int
		participants []string
	}
	want := map[string]ref{
		"Chess Club":        {12, []string{"michael@mergington.edu", "daniel@mergington.edu"}},
		"Programming Class": {20, []string{"emma@mergington.edu", "sophia@mergington.edu"}},
		"Gym Class":         {30, []string{"john@mergington.edu", "olivia@mergington.edu"}},
		"Basketball Team":   {15, []string{"james@mergington.edu"}},
		"Soccer Club":       {18, []string{"alex@mergington.edu", "sarah@mergington.edu"}},
		"Art Studio":        {16, []string{"grace@mergington.edu"}},
		"Music Band":        {25, []string{"lucas@mergington.edu", "isabella@mergington.edu"}},
		"Debate Team":       {12, []string{"tyler@mergington.edu"}},
		"Science Club":      {20, []string{"noah@mergington.edu", "mia@mergington.edu"}},
	}
	require.Len(t, acts, len(want))

	for _, act := range acts {
		expected, known := want[act.Name]
		require.True(t, known, "unexpected activity %q", act.Name)
		require.Equal(t, expected.capacity, act.MaxParticipants, "capacity of %q", act.Name)
		require.Equal(t, expected.participants, act.Participants, "seed roster of %q", act.Name)
		require.NotEmpty(t, act.Description, "description of %q", act.Name)
		require.NotEmpty(t, act.Schedule, "schedule of %q", act.Name)
		require.NoError(t, act.Validate())
	}
}

func TestLoadFS(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantCount   int
		wantErr     bool
		errContains string
	}{
		{
			name: "valid single activity",
			yamlContent: `
activities:
  - name: "Chess Club"
    description: "Learn strategies and compete in chess tournaments"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 12
    participants:
      - "michael@mergington.edu"
`,
			wantCount: 1,
			wantErr:   false,
		},
		{
			name: "valid multiple activities",
			yamlContent: `
activities:
  - name: "Chess Club"
    description: "Learn strategies and compete in chess tournaments"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 12
    participants: []
  - name: "Art Studio"
    description: "Explore painting, drawing, and other visual arts"
    schedule: "Mondays and Wednesdays, 3:30 PM - 5:00 PM"
    max_participants: 16
    participants: []
`,
			wantCount: 2,
			wantErr:   false,
		},
		{
			name: "activity with no participants key",
			yamlContent: `
activities:
  - name: "Chess Club"
    description: "Learn strategies and compete in chess tournaments"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 12
`,
			wantCount: 1,
			wantErr:   false,
		},
		{
			name: "empty activities array",
			yamlContent: `
activities: []
`,
			wantErr:     true,
			errContains: "no activities found",
		},
		{
			name:        "malformed yaml",
			yamlContent: `activities: [}`,
			wantErr:     true,
			errContains: "parse activities.yaml",
		},
		{
			name: "duplicate activity names",
			yamlContent: `
activities:
  - name: "Chess Club"
    description: "Learn strategies and compete in chess tournaments"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 12
  - name: "Chess Club"
    description: "Second chess club"
    schedule: "Mondays, 3:30 PM - 5:00 PM"
    max_participants: 8
`,
			wantErr:     true,
			errContains: `duplicate activity "Chess Club"`,
		},
		{
			name: "missing description",
			yamlContent: `
activities:
  - name: "Chess Club"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 12
`,
			wantErr:     true,
			errContains: "description is required",
		},
		{
			name: "zero capacity",
			yamlContent: `
activities:
  - name: "Chess Club"
    description: "Learn strategies and compete in chess tournaments"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 0
`,
			wantErr:     true,
			errContains: "max_participants must be positive",
		},
		{
			name: "duplicate participant in roster",
			yamlContent: `
activities:
  - name: "Chess Club"
    description: "Learn strategies and compete in chess tournaments"
    schedule: "Fridays, 3:30 PM - 5:00 PM"
    max_participants: 12
    participants:
      - "michael@mergington.edu"
      - "michael@mergington.edu"
`,
			wantErr:     true,
			errContains: "duplicate participant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acts, err := LoadFS(createSeedFS(tt.yamlContent), "activities.yaml")

			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.Len(t, acts, tt.wantCount)
			for _, act := range acts {
				require.NotNil(t, act.Participants, "participants must never be nil")
			}
		})
	}
}

func TestLoadFS_MissingFile(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{}, "activities.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "read activities.yaml")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
activities:
  - name: "Robotics Club"
    description: "Build and program robots"
    schedule: "Saturdays, 10:00 AM - 12:00 PM"
    max_participants: 10
    participants:
      - "lucas@mergington.edu"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	acts, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	require.Equal(t, "Robotics Club", acts[0].Name)
	require.Equal(t, []string{"lucas@mergington.edu"}, acts[0].Participants)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read")
}
