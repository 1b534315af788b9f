package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oa-drill/evaluator/api"
	"github.com/oa-drill/evaluator/internal/gatherer/termgath"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/oa-drill/evaluator/internal/transport"
	"github.com/urfave/cli/v3"
)

func (a *app) evalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "evaluate one source file against the samples of a problem",
		ArgsUsage: "SOURCE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "qkey", Aliases: []string{"q"}, Usage: "problem key", Required: true},
			&cli.StringFlag{Name: "lang", Aliases: []string{"l"}, Usage: "language; guessed from the file extension when empty"},
			&cli.StringFlag{Name: "problems", Usage: "problem cache file; overrides EVAL_PROBLEMS_FILE"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show input and output of failed cases"},
			&cli.BoolFlag{Name: "json", Usage: "print the response as JSON instead of progress"},
		},
		Action: a.eval,
	}
}

func (a *app) eval(ctx context.Context, cmd *cli.Command) error {
	src := cmd.Args().First()
	if src == "" {
		return errors.New("missing SOURCE argument")
	}
	code, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	language := cmd.String("lang")
	if language == "" {
		language = strings.TrimPrefix(filepath.Ext(src), ".")
	}

	var lookup problems.Lookup
	if p := cmd.String("problems"); p != "" {
		lookup = problems.NewFileStore(p)
	} else if lookup, err = a.cfg.ProblemLookup(ctx); err != nil {
		return err
	}

	eng, err := a.newEngine(lookup)
	if err != nil {
		return err
	}
	defer eng.close(a.logger)

	req := api.EvalReq{QKey: cmd.String("qkey"), Language: language, Code: string(code)}
	if cmd.Bool("json") {
		resp := transport.Handle(ctx, eng, req, nil)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return exitStatus(resp)
	}

	term := termgath.New(os.Stdout)
	term.Verbose = cmd.Bool("verbose")
	resp := transport.Handle(ctx, eng, req, term)
	return exitStatus(resp)
}

// exitStatus turns an unsuccessful response into an error, so the process
// exits non-zero.
func exitStatus(resp api.EvalResponse) error {
	if !resp.Ok {
		msg := "evaluation failed"
		if resp.Error != nil {
			msg = *resp.Error
		}
		return cli.Exit(fmt.Sprintf("%s error: %s", resp.ErrorKind, msg), 2)
	}
	if resp.Passed < resp.Total {
		return cli.Exit("", 1)
	}
	return nil
}
