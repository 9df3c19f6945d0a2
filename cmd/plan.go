package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/stacksync/internal/formatter"
	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/desertthunder/stacksync/internal/tasks"
	"github.com/urfave/cli/v3"
)

const formatSummary = "summary"

// PlanFrontend runs design_to_frontend on the design file.
func (r *Runner) PlanFrontend(ctx context.Context, cmd *cli.Command) error {
	return r.plan(ctx, cmd, operations.DesignToFrontend)
}

// PlanBackend runs design_to_backend on the design file.
func (r *Runner) PlanBackend(ctx context.Context, cmd *cli.Command) error {
	return r.plan(ctx, cmd, operations.DesignToBackend)
}

func (r *Runner) plan(ctx context.Context, cmd *cli.Command, operation string) error {
	format := strings.ToLower(cmd.String("format"))
	if err := validatePlanFormat(format); err != nil {
		return err
	}

	in, err := loadJobInputs(cmd.StringArg("design"), operation)
	if err != nil {
		return err
	}

	res, err := r.dispatcher(!cmd.Bool("no-record")).Dispatch(ctx, operation, in, nil)
	if err != nil {
		return err
	}

	data, err := renderPlan(res.Output, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data, cmd.String("output"))
}

// PlanAll plans both sides of the design and reconciles implementation summaries when given.
func (r *Runner) PlanAll(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	if err := validatePlanFormat(format); err != nil {
		return err
	}

	design, err := loadSection(cmd.StringArg("design"), "design")
	if err != nil {
		return err
	}
	in := operations.Inputs{"design": design}

	for flag, key := range map[string]string{
		"frontend-impl": "frontend_implementation",
		"backend-impl":  "backend_implementation",
	} {
		path := cmd.String(flag)
		if path == "" {
			continue
		}
		if in[key], err = loadSection(path, key); err != nil {
			return err
		}
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go r.progressPrinter(progress, done)

	result, err := tasks.NewPipeline(r.dispatcher(!cmd.Bool("no-record"))).Run(ctx, in, progress)
	close(progress)
	<-done

	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		if data, err = shared.MarshalJSON(result, true); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		for _, output := range []any{result.Frontend, result.Backend} {
			part, err := renderPlan(output, format)
			if err != nil {
				return err
			}
			data = append(data, part...)
			data = append(data, '\n')
		}
		if result.Sync != nil {
			part, err := renderSync(result.Sync, format)
			if err != nil {
				return err
			}
			data = append(data, part...)
		}
	}

	return r.writeBytes(data, cmd.String("output"))
}

func validatePlanFormat(format string) error {
	switch format {
	case formatSummary, "json", "markdown", "md":
		return nil
	}
	return fmt.Errorf("%w: plan format %q (want summary, json or markdown)", shared.ErrInvalidFlag, format)
}

// renderPlan renders a FrontendPlan or BackendPlan.
func renderPlan(output any, format string) ([]byte, error) {
	if format == "json" {
		data, err := shared.MarshalJSON(output, true)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	}

	switch plan := output.(type) {
	case *models.FrontendPlan:
		if format == formatSummary {
			return []byte(formatter.RenderPlanSummary("Frontend", plan.TechStack, plan.Tasks)), nil
		}
		return formatter.FrontendPlanToMarkdown(plan)
	case *models.BackendPlan:
		if format == formatSummary {
			return []byte(formatter.RenderPlanSummary("Backend", plan.TechStack, plan.Tasks)), nil
		}
		return formatter.BackendPlanToMarkdown(plan)
	}
	return nil, fmt.Errorf("%w: unexpected plan output %T", shared.ErrOperationFailed, output)
}

// renderSync renders a sync report in a plan-compatible format.
func renderSync(report *models.SyncReport, format string) ([]byte, error) {
	if format == formatSummary {
		return []byte(formatter.RenderSummary(report)), nil
	}
	f, err := formatter.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return formatter.RenderReport(report, f)
}
