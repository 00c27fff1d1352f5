package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/indicator"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/store/sqlite"
)

func newListCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderRegistry(cmd, indicator.Builtins())
			return nil
		},
	}
}

func renderRegistry(cmd *cobra.Command, reg *indicator.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Shape", "Length", "Mult", "Source", "Params", "Description"})
	for _, name := range reg.Names() {
		ind, err := reg.Lookup(name)
		if err != nil {
			continue
		}
		d := ind.Descriptor()
		t.AppendRow(table.Row{
			d.Name, d.Shape, blankZero(d.DefaultLength), blankZeroF(d.DefaultMultiplier),
			d.DefaultSource, describeParams(d.Params), d.Description,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", reg.Len()})
	t.Render()
}

func describeParams(params []indicator.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s=%d", p.Name, p.Default)
	}
	return strings.Join(parts, " ")
}

func blankZero(v int) any {
	if v == 0 {
		return ""
	}
	return v
}

func blankZeroF(v float64) any {
	if v == 0 {
		return ""
	}
	return v
}

func newSeriesCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "series",
		Short: "List the symbol/timeframe series stored in SQLite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				dbPath = a.cfg.SQLitePath
			}
			r, err := sqlite.NewReader(dbPath)
			if err != nil {
				return err
			}
			defer r.Close()

			series, err := r.ListSeries(cmd.Context())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Symbol", "TF", "Bars", "First", "Last"})
			for _, s := range series {
				t.AppendRow(table.Row{s.Symbol, s.Timeframe, s.Bars, s.First.Format(timeLayout), s.Last.Format(timeLayout)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "sqlite", "", "SQLite database path (default TA_SQLITE_PATH)")
	return cmd
}
