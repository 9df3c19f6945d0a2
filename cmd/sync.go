package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/stacksync/internal/formatter"
	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Sync reconciles a frontend and a backend implementation summary.
//
// Inputs come from --input (both sections in one document) or --frontend/--backend; a
// side given by its own flag overrides the same section of --input.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	if format != formatSummary {
		if _, err := formatter.ParseFormat(format); err != nil {
			return err
		}
	}

	in, err := r.syncInputs(cmd)
	if err != nil {
		return err
	}

	res, err := r.dispatcher(!cmd.Bool("no-record")).Dispatch(ctx, operations.FrontendBackendSync, in, nil)
	if err != nil {
		return err
	}

	report, ok := res.Output.(*models.SyncReport)
	if !ok {
		return fmt.Errorf("%w: unexpected sync output %T", shared.ErrOperationFailed, res.Output)
	}

	r.logger.Debug("sync complete", "findings", len(report.Results), "critical", len(report.Adjustments.Critical))

	output := cmd.String("output")
	if output != "" && format != formatSummary {
		f, _ := formatter.ParseFormat(format)
		path, err := formatter.WriteReport(report, f, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Report written to %s\n", path)
	} else {
		data, err := renderSync(report, format)
		if err != nil {
			return err
		}
		if err := r.writeBytes(data, output); err != nil {
			return err
		}
	}

	if n := len(report.Adjustments.Critical); n > 0 && cmd.Bool("fail-on-critical") {
		return fmt.Errorf("%w: %d critical adjustment(s)", shared.ErrCriticalFindings, n)
	}
	return nil
}

func (r *Runner) syncInputs(cmd *cli.Command) (operations.Inputs, error) {
	input, frontend, backend := cmd.String("input"), cmd.String("frontend"), cmd.String("backend")
	if input == "" && frontend == "" && backend == "" {
		return nil, fmt.Errorf("%w: --input or --frontend/--backend", shared.ErrMissingArgument)
	}

	in := operations.Inputs{}
	if input != "" {
		doc, err := loadDocument(input)
		if err != nil {
			return nil, err
		}
		for _, key := range []string{"frontend_implementation", "backend_implementation"} {
			if v, ok := doc[key]; ok {
				in[key] = v
			}
		}
	}

	for _, side := range []struct{ path, key string }{
		{frontend, "frontend_implementation"},
		{backend, "backend_implementation"},
	} {
		if side.path == "" {
			continue
		}
		section, err := loadSection(side.path, side.key)
		if err != nil {
			return nil, err
		}
		in[side.key] = section
	}

	return in, nil
}
