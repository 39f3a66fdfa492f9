package cmd

import "github.com/spf13/cobra"

// planCmd is an explicit alias for the root behavior, so scripts can spell
// out the action.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Rank practice schedules for the configured window",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(planCmd)
}
