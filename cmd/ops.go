package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/urfave/cli/v3"
)

// OpsList prints the registered operations.
func (r *Runner) OpsList(ctx context.Context, cmd *cli.Command) error {
	descriptors := r.registry.Describe()

	if cmd.Bool("json") {
		return r.writeJSON(descriptors, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Operations")
	for _, d := range descriptors {
		r.writePlain("%-24s %s\n", d.Name, d.Description)
	}
	return nil
}

// OpsRun dispatches an operation by name with inputs from --input and prints its output as JSON.
func (r *Runner) OpsRun(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: operation name", shared.ErrMissingArgument)
	}

	in := operations.Inputs{}
	if path := cmd.String("input"); path != "" {
		loaded, err := loadDocument(path)
		if err != nil {
			return err
		}
		in = loaded
	}

	res, err := r.dispatcher(!cmd.Bool("no-record")).Dispatch(ctx, name, in, nil)
	if err != nil {
		return err
	}
	if id := res.Run.ID(); id != "" {
		r.logger.Info("run recorded", "id", id, "sequence", res.Run.Sequence())
	}

	data, err := shared.MarshalJSON(res.Output, cmd.Bool("pretty"))
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return r.writeBytes(append(data, '\n'), cmd.String("output"))
}
