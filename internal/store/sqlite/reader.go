// Package sqlite loads OHLCV bars from a SQLite bars table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Reader provides read-only access to stored bars.
type Reader struct {
	db *sql.DB
}

// NewReader opens a SQLite connection for reading.
func NewReader(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite open reader: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	slog.Info("sqlite reader opened", "path", dbPath)
	return &Reader{db: db}, nil
}

// LoadBars returns the bars of one symbol and timeframe in ascending ts
// order. limit > 0 keeps only the most recent limit bars.
func (r *Reader) LoadBars(ctx context.Context, symbol, timeframe string, limit int) ([]model.Candle, error) {
	// Newest first so LIMIT keeps the tail; reversed below.
	query := `
		SELECT ts, open, high, low, close, volume
		FROM bars
		WHERE symbol = ? AND timeframe = ?
		ORDER BY ts DESC`
	args := []any{symbol, timeframe}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite query bars: %w", err)
	}
	defer rows.Close()

	var candles []model.Candle
	for rows.Next() {
		c := model.Candle{Symbol: symbol, Timeframe: timeframe}
		var ts int64
		var vol sql.NullFloat64
		if err := rows.Scan(&ts, &c.Open, &c.High, &c.Low, &c.Close, &vol); err != nil {
			return nil, fmt.Errorf("sqlite scan bars: %w", err)
		}
		c.TS = time.Unix(ts, 0).UTC()
		if vol.Valid {
			v := vol.Float64
			c.Volume = &v
		}
		candles = append(candles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite iterate bars: %w", err)
	}

	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
	}
	return candles, nil
}

// LoadMarket is LoadBars converted to MarketData.
func (r *Reader) LoadMarket(ctx context.Context, symbol, timeframe string, limit int) (*model.MarketData, error) {
	candles, err := r.LoadBars(ctx, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("sqlite: no bars for %s:%s", symbol, timeframe)
	}
	return model.FromCandles(candles), nil
}

// SeriesInfo summarises one stored symbol/timeframe pair.
type SeriesInfo struct {
	Symbol    string
	Timeframe string
	Bars      int
	First     time.Time
	Last      time.Time
}

// ListSeries returns every stored symbol/timeframe pair.
func (r *Reader) ListSeries(ctx context.Context) ([]SeriesInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, timeframe, COUNT(*), MIN(ts), MAX(ts)
		FROM bars
		GROUP BY symbol, timeframe
		ORDER BY symbol, timeframe
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite query series: %w", err)
	}
	defer rows.Close()

	var out []SeriesInfo
	for rows.Next() {
		var s SeriesInfo
		var first, last int64
		if err := rows.Scan(&s.Symbol, &s.Timeframe, &s.Bars, &first, &last); err != nil {
			return nil, fmt.Errorf("sqlite scan series: %w", err)
		}
		s.First = time.Unix(first, 0).UTC()
		s.Last = time.Unix(last, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.db.Close()
}
