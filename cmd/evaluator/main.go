package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oa-drill/evaluator/internal/config"
	"github.com/oa-drill/evaluator/internal/evaluator"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/oa-drill/evaluator/internal/logging"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/oa-drill/evaluator/internal/process"
	"github.com/oa-drill/evaluator/internal/workspace"
	"github.com/urfave/cli/v3"
)

// app carries what every subcommand shares once the root Before hook ran.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	cmd := &cli.Command{
		Name:  "evaluator",
		Usage: "compile and run submissions against problem sample cases",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file read before the environment",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error; overrides LOG_LEVEL",
			},
			&cli.StringFlag{
				Name:  "work-dir",
				Usage: "directory holding evaluation workspaces; overrides EVAL_WORK_DIR",
			},
			&cli.IntFlag{
				Name:  "max-concurrent",
				Usage: "evaluations allowed to run at once; overrides EVAL_MAX_CONCURRENT",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.evalCommand(),
			a.behaveCommand(),
			a.serveNatsCommand(),
			a.serveSQSCommand(),
			a.serveHTTPCommand(),
			a.languagesCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return ctx, err
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := cmd.String("work-dir"); v != "" {
		cfg.WorkDir = v
	}
	if v := int(cmd.Int("max-concurrent")); v > 0 {
		cfg.MaxConcurrent = v
	}

	logger, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return ctx, err
	}
	a.cfg = cfg
	a.logger = logger
	return ctx, nil
}

// engine is an evaluator together with the workspaces it allocates from.
type engine struct {
	*evaluator.Evaluator
	workspaces *workspace.Manager
}

// close removes workspaces left behind by interrupted evaluations.
func (e *engine) close(logger *slog.Logger) {
	if err := e.workspaces.ReleaseAll(); err != nil {
		logger.Warn("failed to release workspaces", "error", err)
	}
}

func (a *app) newEngine(lookup problems.Lookup) (*engine, error) {
	m, err := workspace.NewManager(a.cfg.WorkDir, a.logger)
	if err != nil {
		return nil, err
	}
	e, err := evaluator.New(evaluator.Config{
		Lookup:      lookup,
		Workspaces:  m,
		Runner:      process.NewRunner(a.logger),
		Languages:   lang.NewRegistry(a.cfg.Toolchain),
		CaseTimeout: a.cfg.CaseTimeout,
		OutputLimit: a.cfg.OutputLimit,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, err
	}
	return &engine{Evaluator: e, workspaces: m}, nil
}
