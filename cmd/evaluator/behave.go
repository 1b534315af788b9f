package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/oa-drill/evaluator/internal/behave"
	"github.com/oa-drill/evaluator/internal/problems"
	"github.com/oa-drill/evaluator/internal/transport"
	"github.com/urfave/cli/v3"
)

func (a *app) behaveCommand() *cli.Command {
	return &cli.Command{
		Name:      "behave",
		Usage:     "run behaviour scenario files against the local toolchains",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "scenarios run at once", Value: 4},
		},
		Action: a.behave,
	}
}

func (a *app) behave(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("no scenario files given")
	}

	var cases []behave.Case
	for _, f := range files {
		c, err := behave.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		cases = append(cases, c...)
	}

	base, err := a.cfg.ProblemLookup(ctx)
	if err != nil {
		return err
	}
	eng, err := a.newEngine(problems.Chain{behave.Inline(cases), base})
	if err != nil {
		return err
	}
	defer eng.close(a.logger)

	outcomes, err := behave.Run(ctx, transport.NewLimited(eng, a.cfg.MaxConcurrent), cases, int(cmd.Int("parallel")))
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	failed := 0
	for _, o := range outcomes {
		if o.Passed() {
			pass.Fprint(os.Stdout, "PASS")
			fmt.Fprintf(os.Stdout, " %s (%s)\n", o.Case.Name, o.Response.Summary)
			continue
		}
		failed++
		fail.Fprint(os.Stdout, "FAIL")
		fmt.Fprintf(os.Stdout, " %s\n", o.Case.Name)
		for _, m := range o.Mismatches {
			fmt.Fprintf(os.Stdout, "     %s\n", m)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d/%d scenarios passed\n", len(outcomes)-failed, len(outcomes))
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
