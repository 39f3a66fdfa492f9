package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/groovebot/groover/app"
	"github.com/groovebot/groover/config"
	"github.com/groovebot/groover/infra/logger"
	"github.com/groovebot/groover/infra/whenisgood"
)

var availCmd = &cobra.Command{
	Use:   "avail",
	Short: "Print the availability the planner would use",
	RunE:  runAvail,
}

func init() {
	rootCmd.AddCommand(availCmd)
}

func runAvail(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	var source app.AvailabilitySource
	if cfg.WhenIsGood.Enabled() {
		source = whenisgood.NewClient(cfg.WhenIsGood, logger.New("whenisgood"))
	} else {
		source = app.FileSource{Path: cfg.AvailabilityFile}
	}
	participants, free, err := source.FetchAvailability(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range participants {
		slots := append([]time.Time(nil), free[p.Name]...)
		sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
		fmt.Fprintf(out, "%s (%d slots)\n", p.Name, len(slots))
		for _, s := range slots {
			fmt.Fprintf(out, "  %s\n", s.Format(time.RFC3339))
		}
	}
	return nil
}
