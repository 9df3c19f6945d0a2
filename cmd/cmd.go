// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write output to this file instead of stdout",
	}
}

func noRecordFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-record",
		Usage: "Do not record the run in history",
	}
}

// setupCommand initializes the config file and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and run history storage",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag(), &cli.BoolFlag{Name: "rollback", Usage: "Roll back the most recent migration instead"}},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination path",
						Value: "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// opsCommand lists and runs registered operations by name
func opsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "ops",
		Aliases: []string{"op"},
		Usage:   "Registered operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List registered operations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.OpsList,
			},
			{
				Name:  "run",
				Usage: "Run an operation with inputs from a JSON, YAML or TOML file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Inputs document (top-level keys are operation inputs)",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					outputFlag(),
					noRecordFlag(),
				},
				Action: r.OpsRun,
			},
		},
	}
}

// planCommand turns a design document into task lists
func planCommand(r *Runner) *cli.Command {
	planFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: summary, json or markdown",
				Value:   "summary",
			},
			outputFlag(),
			noRecordFlag(),
		}
	}

	return &cli.Command{
		Name:  "plan",
		Usage: "Derive implementation tasks from a design",
		Commands: []*cli.Command{
			{
				Name:      "frontend",
				Aliases:   []string{"fe"},
				Usage:     "Frontend tasks: components, then client services",
				Arguments: []cli.Argument{&cli.StringArg{Name: "design"}},
				Flags:     planFlags(),
				Action:    r.PlanFrontend,
			},
			{
				Name:      "backend",
				Aliases:   []string{"be"},
				Usage:     "Backend tasks: controllers, then models, then services",
				Arguments: []cli.Argument{&cli.StringArg{Name: "design"}},
				Flags:     planFlags(),
				Action:    r.PlanBackend,
			},
			{
				Name:      "all",
				Usage:     "Plan both sides and reconcile implementations when given",
				Arguments: []cli.Argument{&cli.StringArg{Name: "design"}},
				Flags: append(planFlags(),
					&cli.StringFlag{
						Name:  "frontend-impl",
						Usage: "Frontend implementation summary to reconcile",
					},
					&cli.StringFlag{
						Name:  "backend-impl",
						Usage: "Backend implementation summary to reconcile",
					},
				),
				Action: r.PlanAll,
			},
		},
	}
}

// syncCommand reconciles frontend and backend implementation summaries
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Compare frontend and backend implementations and list adjustments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Document holding frontend_implementation and backend_implementation",
			},
			&cli.StringFlag{
				Name:  "frontend",
				Usage: "Frontend implementation summary",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Backend implementation summary",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: summary, json, markdown, csv or txt",
				Value:   "summary",
			},
			outputFlag(),
			&cli.BoolFlag{
				Name:  "fail-on-critical",
				Usage: "Exit with an error when critical adjustments are needed",
			},
			noRecordFlag(),
		},
		Action: r.Sync,
	}
}

// batchCommand runs one operation over many input documents
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Run an operation over input files or directories",
		ArgsUsage: "<file or directory>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "operation",
				Aliases:  []string{"op"},
				Usage:    "Operation to run for every input",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers (max 10)",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Jobs started per second (0 for unlimited)",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Write a JSON manifest of job outcomes to this path",
			},
			noRecordFlag(),
		},
		Action: r.Batch,
	}
}

// historyCommand inspects recorded runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Recorded operation runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List runs, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "operation",
						Usage: "Only runs of this operation",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only runs with this status (pending, running, succeeded, failed)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:      "show",
				Usage:     "Show one run by sequence number or ID",
				Arguments: []cli.Argument{&cli.StringArg{Name: "ref"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "output-only",
						Usage: "Print only the stored operation output",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete one run by sequence number or ID",
				Arguments: []cli.Argument{&cli.StringArg{Name: "ref"}},
				Action:    r.HistoryDelete,
			},
		},
	}
}

// serveCommand exposes the operations over HTTP
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the operations API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}
