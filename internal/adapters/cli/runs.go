package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/config"
	"github.com/rajivmehta/cargoplan-go/internal/infrastructure/database"
)

// NewRunsCommand creates the runs command
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent plan runs from the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)
			repo, db, err := openHistory(cfg, true)
			if err != nil {
				return err
			}
			defer database.Close(db)

			records, err := repo.FindRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("no plan runs recorded")
				return nil
			}
			for _, record := range records {
				fmt.Printf("%s  %s  margin=%.2f  delivered=%d rolled=%d denied=%d  events=%d alerts=%d\n",
					record.CreatedAt.Format("2006-01-02 15:04:05"), record.ID,
					record.TotalMargin, record.Delivered, record.Rolled, record.Denied,
					record.EventCount, record.AlertCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
