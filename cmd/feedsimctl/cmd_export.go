package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedsim/pkg/feedsim"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a run's artifacts with CSV renditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			runID, _ := cmd.Flags().GetString("run")
			latest, _ := cmd.Flags().GetBool("latest")
			outDir, _ := cmd.Flags().GetString("out")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if runID == "" && !latest {
				return fmt.Errorf("export requires --run or --latest")
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			exported, err := client.Export(cmd.Context(), feedsim.ExportRequest{
				RunID:  runID,
				Latest: latest,
				OutDir: outDir,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(exported)
			}
			fmt.Printf("exported %s to %s\n", exported.RunID, exported.Directory)
			return nil
		},
	}

	cmd.Flags().String("run", "", "run id")
	cmd.Flags().Bool("latest", false, "export the most recent run")
	cmd.Flags().String("out", "exports", "output directory")
	return cmd
}
