package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedsim/internal/feed"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List available behavior profiles and update rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := make([]string, 0, 4)
			for _, profile := range feed.Profiles() {
				profiles = append(profiles, profile.Name())
			}
			rules := make([]string, 0, 2)
			for _, rule := range feed.UpdateRules() {
				rules = append(rules, rule.Name())
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string][]string{
					"profiles":     profiles,
					"update_rules": rules,
				})
			}
			fmt.Println("profiles:")
			for _, name := range profiles {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("update rules:")
			for _, name := range rules {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
				return
			}
			fmt.Printf("feedsimctl version %s\n", version)
		},
	}
}
