package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedsim/pkg/feedsim"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List finished runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			aggregate, _ := cmd.Flags().GetBool("aggregate")
			jsonOut, _ := cmd.Flags().GetBool("json")

			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if aggregate {
				stats, err := client.AggregateEngagement(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(stats)
				}
				fmt.Printf("engagement over %d runs: mean %.4f std %.4f min %.4f max %.4f\n",
					stats.TotalRuns, stats.Mean, stats.Std, stats.Min, stats.Max)
				return nil
			}

			runs, err := client.Runs(cmd.Context(), feedsim.RunsRequest{Limit: limit})
			if err != nil {
				return err
			}
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(runs)
			}
			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}
			for _, run := range runs {
				fmt.Printf("%s  users=%d posts=%d rule=%s seed=%d engagement=%.4f  %s\n",
					run.RunID, run.NumUsers, run.PostsPerUser, run.UpdateRule,
					run.Seed, run.EngagementRate, run.CreatedAtUTC)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum runs to list")
	cmd.Flags().Bool("aggregate", false, "print engagement statistics instead of the list")
	return cmd
}
