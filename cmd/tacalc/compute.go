package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/NeaByteLab/Trading-Lib-sub003/config"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/indicator"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/logger"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/metrics"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/store/redis"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/store/sqlite"
)

const timeLayout = "2006-01-02 15:04"

// barFlags selects where bars are loaded from.
type barFlags struct {
	sqlitePath string
	stream     string
	symbol     string
	timeframe  string
	limit      int
}

func (f *barFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "SQLite database path (default TA_SQLITE_PATH)")
	cmd.Flags().StringVar(&f.stream, "redis-stream", "", "load bars from this Redis stream instead of SQLite")
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "symbol to load")
	cmd.Flags().StringVar(&f.timeframe, "tf", "1m", "timeframe to load")
	cmd.Flags().IntVar(&f.limit, "limit", 500, "most recent bars to load (0 = all)")
}

func (f *barFlags) load(ctx context.Context, cfg *config.Config) (*model.MarketData, error) {
	if f.stream != "" {
		r, err := redis.NewReader(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return r.LoadMarket(ctx, f.stream, int64(f.limit))
	}

	if f.symbol == "" {
		return nil, errors.New("--symbol is required when reading from SQLite")
	}
	path := f.sqlitePath
	if path == "" {
		path = cfg.SQLitePath
	}
	r, err := sqlite.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.LoadMarket(ctx, f.symbol, f.timeframe, f.limit)
}

func newComputeCmd(a *app) *cobra.Command {
	var (
		bars        barFlags
		indicators  string
		file        string
		rows        int
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute indicators over stored bars and print the latest values",
		Example: `  tacalc compute --symbol BTCUSD --tf 5m --indicators "SMA:20,RSI:14,MACD"
  tacalc compute --redis-stream bars:BTCUSD:1m --file indicators.yaml --rows 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logger.WithRunID(cmd.Context(), logger.NewRunID())
			cfg := *a.cfg
			if indicators != "" {
				cfg.Indicators, cfg.IndicatorFile = indicators, ""
			}
			if file != "" {
				cfg.IndicatorFile = file
			}
			if metricsAddr != "" {
				cfg.MetricsAddr = metricsAddr
			}

			specs, err := cfg.Specs()
			if err != nil {
				return err
			}
			md, err := bars.load(ctx, &cfg)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			m := metrics.NewMetrics(reg)
			var srv *metrics.Server
			if cfg.MetricsAddr != "" {
				srv = metrics.NewServer(cfg.MetricsAddr, reg)
				if err := srv.Start(); err != nil {
					return err
				}
			}

			engine := indicator.NewEngine(indicator.Builtins(), indicator.WithMetrics(m), indicator.WithLogger(a.log))
			results, err := engine.Compute(ctx, md, specs)
			if err != nil {
				return err
			}
			renderResults(cmd.OutOrStdout(), md, results, rows)

			if srv == nil {
				return nil
			}
			a.log.Info("serving metrics until interrupted", "addr", srv.Addr())
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
	bars.register(cmd)
	cmd.Flags().StringVar(&indicators, "indicators", "", `indicator list, e.g. "SMA:20,RSI:14" (default TA_INDICATORS)`)
	cmd.Flags().StringVar(&file, "file", "", "YAML indicator-set file (default TA_INDICATOR_FILE)")
	cmd.Flags().IntVar(&rows, "rows", 10, "number of most recent bars to print")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address after computing")
	return cmd
}

// renderResults prints the last rows bars with one column per indicator
// series. Auxiliary series appear as LABEL.name.
func renderResults(w io.Writer, md *model.MarketData, results []indicator.Named, rows int) {
	n := md.Len()
	start := 0
	if rows > 0 && rows < n {
		start = n - rows
	}

	header := table.Row{"Time", "Close"}
	var cols [][]float64
	for _, r := range results {
		header = append(header, r.Label)
		cols = append(cols, r.Result.Values)
		keys := make([]string, 0, len(r.Result.Metadata.Series))
		for k := range r.Result.Metadata.Series {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			header = append(header, r.Label+"."+k)
			cols = append(cols, r.Result.Aux(k))
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	for i := start; i < n; i++ {
		row := table.Row{barTime(md, i), formatValue(md.Close[i])}
		for _, c := range cols {
			row = append(row, formatValue(c[i]))
		}
		t.AppendRow(row)
	}
	t.Render()
}

func barTime(md *model.MarketData, i int) string {
	if md.Timestamp == nil {
		return strconv.Itoa(i)
	}
	return time.Unix(md.Timestamp[i], 0).UTC().Format(timeLayout)
}

func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case math.IsInf(v, 0):
		return fmt.Sprint(v)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}
