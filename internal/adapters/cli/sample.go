package cli

import (
	"github.com/spf13/cobra"

	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
	"github.com/rajivmehta/cargoplan-go/internal/sampledata"
)

// NewSampleCommand creates the sample command
func NewSampleCommand() *cobra.Command {
	var (
		outDir  string
		disrupt bool
		seed    int64
		history bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Run the bundled sample dataset",
		Long: `Sample plans the bundled Indian domestic network (DEL, BOM,
BLR, MAA, HYD, CCU). With --disrupt the bundled disruption scenario is
applied on top of the baseline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)
			if cmd.Flags().Changed("seed") {
				cfg.Planner.Seed = seed
			}

			inputs, err := sampledata.Load()
			if err != nil {
				return err
			}
			if disrupt {
				events, err := sampledata.Events()
				if err != nil {
					return err
				}
				inputs.Events = events
			}
			return runPlan(cfg, inputs, outDir, history)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "out", "Output directory for the plan artifacts")
	cmd.Flags().BoolVar(&disrupt, "disrupt", false, "Apply the bundled disruption scenario")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the optimizer seed")
	cmd.Flags().BoolVar(&history, "history", false, "Record the run in the plan-run history database")

	return cmd
}
