package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedsim/internal/storage"
	"feedsim/pkg/feedsim"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "feedsimctl",
		Short: "Social feed opinion dynamics simulator",
		Long: `feedsimctl runs agent-based simulations of a social feed: users with
ground-truth opinions and quality judge posts through noisy estimates, and
every like feeds those estimates back into the platform's picture of both
sides.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	rootCmd.PersistentFlags().String("db-path", "feedsim.db", "sqlite database path")
	rootCmd.PersistentFlags().String("runs-dir", "runs", "directory for run artifacts")
	rootCmd.PersistentFlags().String("log", "none", "logging mode: none|dev|prod")
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newRunsCmd(),
		newSummaryCmd(),
		newExportCmd(),
		newProfilesCmd(),
	)
	return rootCmd
}

func newClient(cmd *cobra.Command) (*feedsim.Client, error) {
	storeKind, _ := cmd.Flags().GetString("store")
	dbPath, _ := cmd.Flags().GetString("db-path")
	runsDir, _ := cmd.Flags().GetString("runs-dir")
	logMode, _ := cmd.Flags().GetString("log")

	logger, err := newLogger(logMode)
	if err != nil {
		return nil, err
	}

	return feedsim.New(feedsim.Options{
		StoreKind: storeKind,
		DBPath:    dbPath,
		RunsDir:   runsDir,
		Logger:    logger,
	})
}
