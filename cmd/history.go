package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recorded runs, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStore(); err != nil {
		return err
	}

	status := cmd.String("status")
	if status != "" && !models.RunStatus(status).Valid() {
		return fmt.Errorf("%w: status %q", shared.ErrInvalidFlag, status)
	}

	runs, err := r.store.List(map[string]any{
		"operation": cmd.String("operation"),
		"status":    status,
		"limit":     int(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, cmd.Bool("pretty"))
	}

	if len(runs) == 0 {
		r.writePlain("No runs recorded\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Runs (%d)", len(runs)))
	for _, run := range runs {
		r.writePlain("#%-5d %-22s %-10s %s  %s\n",
			run.Sequence(), run.Operation(), run.Status(), describeCounts(run), run.CreatedAt().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// HistoryShow prints one run, or only its stored output with --output-only.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStore(); err != nil {
		return err
	}

	run, err := r.store.Find(cmd.StringArg("ref"))
	if err != nil {
		return err
	}

	if cmd.Bool("output-only") {
		if len(run.Output()) == 0 {
			return fmt.Errorf("%w: run #%d has no output (%s)", shared.ErrInvalidRun, run.Sequence(), run.Status())
		}
		return r.writeBytes(append(run.Output(), '\n'), "")
	}

	return r.writeJSON(run, true)
}

// HistoryDelete soft-deletes one run.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStore(); err != nil {
		return err
	}

	run, err := r.store.Find(cmd.StringArg("ref"))
	if err != nil {
		return err
	}

	if err := r.store.Delete(run.ID()); err != nil {
		return err
	}

	r.logger.Info("run deleted", "id", run.ID(), "sequence", run.Sequence())
	r.writePlain("✓ Deleted run #%d (%s)\n", run.Sequence(), run.Operation())
	return nil
}

func describeCounts(run *models.Run) string {
	c := run.Counts()
	switch {
	case run.Status() == models.RunFailed:
		return run.ErrorMessage()
	case c.Findings > 0 || c.Adjustments > 0:
		return fmt.Sprintf("%d findings, %d adjustments (%d critical)", c.Findings, c.Adjustments, c.Critical)
	default:
		return fmt.Sprintf("%d tasks", c.Tasks)
	}
}
