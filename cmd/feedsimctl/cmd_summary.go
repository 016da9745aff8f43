package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedsim/pkg/feedsim"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the outcome of one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, _ := cmd.Flags().GetString("run")
			latest, _ := cmd.Flags().GetBool("latest")
			jsonOut, _ := cmd.Flags().GetBool("json")

			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.Summary(cmd.Context(), feedsim.SummaryRequest{
				RunID:  runID,
				Latest: latest,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(summary)
			}
			fmt.Printf("run %s\n", summary.RunID)
			fmt.Printf("  interactions:    %d of %d pairings\n", summary.InteractionCount, summary.TotalInteractions)
			fmt.Printf("  engagement rate: %.4f\n", summary.EngagementRate)
			fmt.Printf("  position drift:  users %.3f/%.3f posts %.3f/%.3f\n",
				summary.Deviation.UserX, summary.Deviation.UserY,
				summary.Deviation.PostX, summary.Deviation.PostY)
			fmt.Printf("  quality drift:   %.1f\n", summary.Deviation.Quality)
			return nil
		},
	}

	cmd.Flags().String("run", "", "run id")
	cmd.Flags().Bool("latest", false, "use the most recent run")
	return cmd
}
