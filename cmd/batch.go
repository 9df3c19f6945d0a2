package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/stacksync/internal/formatter"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/desertthunder/stacksync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// batchManifestEntry records one job outcome in the batch manifest.
type batchManifestEntry struct {
	Job      string `json:"job"`
	RunID    string `json:"run_id,omitempty"`
	Sequence int    `json:"sequence,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type batchManifest struct {
	Operation string               `json:"operation"`
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Jobs      []batchManifestEntry `json:"jobs"`
}

// Batch runs --operation over every input file, expanding directories to their JSON, YAML and TOML files.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	operation := cmd.String("operation")
	if _, err := r.registry.Get(operation); err != nil {
		return err
	}

	paths, err := expandInputs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	jobs := make([]tasks.Job, 0, len(paths))
	for _, path := range paths {
		in, err := loadJobInputs(path, operation)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		jobs = append(jobs, tasks.Job{ID: path, Operation: operation, Inputs: in})
	}

	r.writePlain("Running %s over %d input(s)...\n\n", operation, len(jobs))

	progress := make(chan tasks.ProgressUpdate, len(jobs))
	done := make(chan struct{})
	go func() {
		for update := range progress {
			if update.Phase == tasks.BatchJob {
				r.writePlain("%s\n", update.Message)
			}
		}
		close(done)
	}()

	result, err := r.dispatcher(!cmd.Bool("no-record")).Batch(ctx, progress, jobs, tasks.BatchOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-done

	if result != nil {
		r.writePlain("\n")
		r.writePlainHeader("Batch Complete")
		r.writePlain("Succeeded: %d/%d\n", result.Succeeded, result.Total)
		if result.Failed > 0 {
			r.writePlain("Failed: %d\n", result.Failed)
			for _, jr := range result.Results {
				if jr.Err != nil {
					r.writePlain("  - %s: %v\n", jr.Job.ID, jr.Err)
				}
			}
		}

		if path := cmd.String("manifest"); path != "" {
			if err := formatter.WriteJSONFile(newBatchManifest(operation, result), path); err != nil {
				return err
			}
			r.writePlain("Manifest: %s\n", path)
		}
	}

	return err
}

func newBatchManifest(operation string, result *tasks.BatchResult) batchManifest {
	m := batchManifest{
		Operation: operation,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Jobs:      make([]batchManifestEntry, 0, len(result.Results)),
	}

	for _, jr := range result.Results {
		entry := batchManifestEntry{Job: jr.Job.ID, Status: "succeeded"}
		if jr.Result != nil && jr.Result.Run != nil {
			entry.RunID = jr.Result.Run.ID()
			entry.Sequence = jr.Result.Run.Sequence()
		}
		if jr.Err != nil {
			entry.Status = "failed"
			entry.Error = jr.Err.Error()
		}
		m.Jobs = append(m.Jobs, entry)
	}

	return m
}

// expandInputs replaces each directory argument with the supported documents it contains, in name order.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: at least one input file or directory", shared.ErrMissingArgument)
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, err := shared.FormatFromPath(entry.Name()); err == nil {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no JSON, YAML or TOML documents found", shared.ErrInvalidArgument)
	}
	return paths, nil
}
