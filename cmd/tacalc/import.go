package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/store/redis"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/store/sqlite"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		stream, symbol, timeframe, dbPath string
		count                             int64
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy bars from a Redis stream into the SQLite bars table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stream == "" {
				if symbol == "" {
					return errors.New("either --redis-stream or --symbol is required")
				}
				stream = redis.StreamKey(symbol, timeframe)
			}
			if dbPath == "" {
				dbPath = a.cfg.SQLitePath
			}

			r, err := redis.NewReader(cmd.Context(), redis.Config{
				Addr: a.cfg.Redis.Addr, Password: a.cfg.Redis.Password, DB: a.cfg.Redis.DB,
			})
			if err != nil {
				return err
			}
			defer r.Close()

			candles, err := r.LoadBars(cmd.Context(), stream, count)
			if err != nil {
				return err
			}
			if symbol != "" {
				stampBars(candles, symbol, timeframe)
			}

			w, err := sqlite.NewWriter(dbPath)
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.InsertBars(cmd.Context(), candles); err != nil {
				return err
			}

			a.log.Info("imported bars", "stream", stream, "bars", len(candles), "sqlite", dbPath)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d bars from %s\n", len(candles), stream)
			return nil
		},
	}
	cmd.Flags().StringVar(&stream, "redis-stream", "", "source stream (default bars:<symbol>:<tf>)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol used to derive the stream name")
	cmd.Flags().StringVar(&timeframe, "tf", "1m", "timeframe used to derive the stream name")
	cmd.Flags().Int64Var(&count, "count", 0, "most recent entries to copy (0 = all)")
	cmd.Flags().StringVar(&dbPath, "sqlite", "", "SQLite database path (default TA_SQLITE_PATH)")
	return cmd
}

// stampBars tags every candle with symbol and timeframe so the SQLite rows
// land under the key the user asked for, whatever the stream entries carry.
func stampBars(candles []model.Candle, symbol, timeframe string) {
	for i := range candles {
		candles[i].Symbol = symbol
		if timeframe != "" {
			candles[i].Timeframe = timeframe
		}
	}
}
