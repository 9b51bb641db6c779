package main

import (
	"fmt"

	"github.com/justinpbarnett/healtop/internal/ui/panels"
	"github.com/justinpbarnett/healtop/internal/update"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for a newer release",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "healtop version %s\n", panels.Version)

		if update.IsDevBuild(panels.Version) {
			fmt.Fprintln(out, "Development build, update check skipped.")
			return nil
		}

		_, log, err := loadLogger()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		rel, err := update.NewChecker(update.Repo, log.Named("update")).Check(cmd.Context(), panels.Version)
		if err != nil {
			fmt.Fprintf(out, "Update check failed: %v\n", err)
			return nil
		}
		if rel != nil {
			fmt.Fprintf(out, "Update available: v%s. Run \"healtop update\" to install.\n", rel.Version)
		} else {
			fmt.Fprintln(out, "You are up to date.")
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace this binary with the latest release",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, log, err := loadLogger()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		fmt.Fprintf(cmd.OutOrStdout(), "Current version: %s\n", panels.Version)
		rel, err := update.NewChecker(update.Repo, log.Named("update")).Apply(cmd.Context(), panels.Version)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated to v%s\n", rel.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, updateCmd)
}
