package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mergington/activities/internal/activities"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the activity catalog as JSON",
	Long: `Print all activities with their schedules and rosters as JSON,
keyed by activity name. The output matches the GET /activities response.

Examples:
  # List all activities
  activities list

  # Parse specific fields with jq
  activities list | jq 'keys'
  activities list | jq '."Chess Club".participants'`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	acts, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}

	catalog := make(map[string]*activities.Activity, len(acts))
	for _, act := range acts {
		catalog[act.Name] = act
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(catalog)
}
