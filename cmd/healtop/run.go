package main

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/justinpbarnett/healtop/internal/run"
	"github.com/justinpbarnett/healtop/internal/ui/text"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errRunFailed is returned once the failure has already been reported.
var errRunFailed = errors.New("run failed")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a run and follow it without the dashboard",
	Long:  "run triggers a repair run, prints stage progress as it streams in, then the fix ledger and score. It exits non-zero unless the run passes.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireInput(); err != nil {
			return err
		}
		c, err := build(true)
		if err != nil {
			return err
		}
		defer c.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		c.store.Subscribe(progressPrinter(out, c.store))

		if err := c.ctrl.Start(ctx, input); err != nil {
			return err
		}
		if err := c.ctrl.Wait(ctx); err != nil {
			c.log.Info("stopped watching run", zap.Error(err))
			return err
		}

		v := c.store.Snapshot()
		printReport(out, v)
		if v.Status != run.StatusPassed {
			if cause := c.ctrl.LastError(); cause != nil {
				fmt.Fprintf(out, "\nCause: %v\n", cause)
			}
			return errRunFailed
		}
		return nil
	},
}

func init() {
	addInputFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

// progressPrinter prints a line whenever the run enters a new stage or
// changes status.
func progressPrinter(w io.Writer, store *run.Store) func() {
	var (
		mu     sync.Mutex
		step   run.Step
		status run.Status
		gen    run.Generation
	)
	return func() {
		v := store.Snapshot()
		mu.Lock()
		defer mu.Unlock()
		if v.Generation != gen {
			gen, step, status = v.Generation, run.StepNone, ""
		}
		if v.Step != step && v.Step.Valid() {
			step = v.Step
			fmt.Fprintf(w, "[%d/%d] %s\n", int(step), run.NumSteps, step.Label())
		}
		if v.Status != status {
			status = v.Status
			if status.IsTerminal() {
				fmt.Fprintf(w, "%s after %s\n", status, v.Meta.Elapsed)
			}
		}
	}
}

func printReport(w io.Writer, v run.ViewState) {
	fmt.Fprintf(w, "\nRepository: %s\n", v.Meta.RepoURL)
	if branch := run.BranchName(v.Meta.TeamName, v.Meta.LeaderName); branch != "" {
		fmt.Fprintf(w, "Branch:     %s\n", branch)
	}
	fmt.Fprintf(w, "Status:     %s\n", v.Status)
	fmt.Fprintf(w, "Elapsed:    %s\n", v.Meta.Elapsed)

	if ledger := run.Ledger(v.Fixes); ledger != "" {
		fmt.Fprintf(w, "\nFixes:\n%s\n", ledger)
	} else {
		fmt.Fprintln(w, "\nNo fixes reported.")
	}

	s := v.Score
	fmt.Fprintf(w, "\nScore: %d (base %d, speed %s, efficiency %s)\n",
		s.Total, s.Base, text.Signed(s.SpeedBonus), text.Penalty(s.EfficiencyPenalty))
}
