package main

import (
	"context"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/oa-drill/evaluator/internal/lang"
	"github.com/urfave/cli/v3"
)

func (a *app) registry() *lang.Registry {
	return lang.NewRegistry(a.cfg.Toolchain)
}

func (a *app) languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list supported languages and check their toolchains",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Language", "Kind", "Aliases", "Tool", "Health", "Path"})

			missing := 0
			for _, s := range a.registry().Strategies() {
				l := s.Language()
				for _, st := range lang.Check(s) {
					health, where := "OKAY", st.Path
					if st.Err != nil {
						health, where = "ERROR", st.Err.Error()
						missing++
					}
					t.AppendRow(table.Row{
						string(l.ID),
						l.Kind.String(),
						strings.Join(l.Aliases(), ", "),
						st.Tool,
						health,
						where,
					})
				}
				t.AppendSeparator()
			}

			t.SetStyle(table.StyleColoredDark)
			t.SetColumnConfigs([]table.ColumnConfig{
				{
					Name:      "Language",
					AutoMerge: true,
				},
				{
					Name:        "Health",
					Align:       text.AlignCenter,
					Transformer: healthColor,
				},
			})
			t.Render()

			if missing > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

var healthColor = text.Transformer(func(v any) string {
	switch v {
	case "OKAY":
		return text.FgHiGreen.Sprint(v)
	case "ERROR":
		return text.FgHiRed.Sprint(v)
	}
	return ""
})
