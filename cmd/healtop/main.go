// Command healtop watches an autonomous code-repair agent heal a repository.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "healtop",
	Short:         "Dashboard for an autonomous code-repair agent",
	Long:          "healtop starts a repair run on a remote agent and follows its pipeline, fix ledger and score as they stream in.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: healtop.yaml or healtop.toml, then ~/.config/healtop/)")
	addInputFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
