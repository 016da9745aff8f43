package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one simulation run",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			req := defaultRunRequest()
			if configPath != "" {
				fileCfg, err := loadRunFileConfig(configPath)
				if err != nil {
					return err
				}
				req = fileCfg.toRequest()
			}
			if cmd.Flags().Changed("users") {
				req.Users, _ = cmd.Flags().GetInt("users")
			}
			if cmd.Flags().Changed("posts-per-user") {
				req.PostsPerUser, _ = cmd.Flags().GetInt("posts-per-user")
			}
			if cmd.Flags().Changed("profiles") {
				req.ProfileMix, _ = cmd.Flags().GetString("profiles")
			}
			if cmd.Flags().Changed("rule") {
				req.UpdateRule, _ = cmd.Flags().GetString("rule")
			}
			if cmd.Flags().Changed("pull-strength") {
				req.PullStrength, _ = cmd.Flags().GetFloat64("pull-strength")
			}
			if cmd.Flags().Changed("seed") {
				req.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if cmd.Flags().Changed("top") {
				req.RankedPosts, _ = cmd.Flags().GetInt("top")
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(summary)
			}
			fmt.Printf("run %s finished\n", summary.RunID)
			fmt.Printf("  interactions:    %d of %d pairings\n", summary.InteractionCount, summary.TotalInteractions)
			fmt.Printf("  engagement rate: %.4f\n", summary.EngagementRate)
			fmt.Printf("  position drift:  users %.3f/%.3f posts %.3f/%.3f\n",
				summary.Deviation.UserX, summary.Deviation.UserY,
				summary.Deviation.PostX, summary.Deviation.PostY)
			fmt.Printf("  quality drift:   %.1f\n", summary.Deviation.Quality)
			fmt.Printf("  artifacts:       %s\n", summary.ArtifactsDir)
			return nil
		},
	}

	cmd.Flags().String("config", "", "YAML run config path")
	cmd.Flags().Int("users", 100, "number of users")
	cmd.Flags().Int("posts-per-user", 5, "posts authored by each user")
	cmd.Flags().String("profiles", "", "profile mix, e.g. random=0.5,extremist=0.5")
	cmd.Flags().String("rule", "running-mean", "update rule: running-mean|rubber-band")
	cmd.Flags().Float64("pull-strength", 0, "rubber-band pull strength (0 uses the default)")
	cmd.Flags().Int64("seed", 0, "rng seed")
	cmd.Flags().Int("top", 10, "top/bottom post list length in artifacts")
	return cmd
}
