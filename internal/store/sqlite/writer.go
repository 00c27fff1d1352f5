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

const schema = `
CREATE TABLE IF NOT EXISTS bars (
	symbol    TEXT    NOT NULL,
	timeframe TEXT    NOT NULL,
	ts        INTEGER NOT NULL,
	open      REAL    NOT NULL,
	high      REAL    NOT NULL,
	low       REAL    NOT NULL,
	close     REAL    NOT NULL,
	volume    REAL,
	PRIMARY KEY (symbol, timeframe, ts)
);`

// Writer is a single-connection SQLite writer for the bars table.
type Writer struct {
	db *sql.DB
}

// NewWriter opens dbPath in WAL mode and creates the bars table if needed.
func NewWriter(dbPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	slog.Info("sqlite writer opened", "path", dbPath)
	return &Writer{db: db}, nil
}

// InsertBars upserts candles in a single transaction; a bar already stored
// for the same symbol, timeframe and ts is replaced.
func (w *Writer) InsertBars(ctx context.Context, candles []model.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO bars (symbol, timeframe, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range candles {
		var vol sql.NullFloat64
		if c.Volume != nil {
			vol = sql.NullFloat64{Float64: *c.Volume, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, c.Symbol, c.Timeframe, c.TS.Unix(),
			c.Open, c.High, c.Low, c.Close, vol); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite insert %s@%d: %w", c.Key(), c.TS.Unix(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}

	slog.Debug("sqlite committed bars", "count", len(candles), "elapsed", time.Since(start))
	return nil
}

// Close closes the database.
func (w *Writer) Close() error {
	return w.db.Close()
}

func dsn(path string) string {
	return path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
}
