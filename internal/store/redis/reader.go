// Package redis loads OHLCV bars from Redis streams.
//
// Each stream entry carries one bar as JSON in its "data" field, the format
// model.Candle.JSON produces.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

// Config configures the Redis connection.
type Config struct {
	Addr     string // e.g. "localhost:6379"
	Password string
	DB       int
}

// Reader reads bar streams.
type Reader struct {
	client  *goredis.Client
	breaker *Breaker
}

// NewReader connects to Redis and pings the server.
func NewReader(ctx context.Context, cfg Config) (*Reader, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("redis reader connected", "addr", cfg.Addr, "db", cfg.DB)
	return &Reader{client: client, breaker: NewBreaker(3, 10*time.Second)}, nil
}

// StreamKey returns the stream name for a symbol and timeframe.
func StreamKey(symbol, timeframe string) string {
	return "bars:" + symbol + ":" + timeframe
}

// LoadBars returns the bars in stream in entry order. count > 0 keeps only
// the most recent count entries. Entries without a decodable bar are skipped.
func (r *Reader) LoadBars(ctx context.Context, stream string, count int64) ([]model.Candle, error) {
	var msgs []goredis.XMessage
	err := r.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		if count > 0 {
			msgs, err = r.client.XRevRangeN(ctx, stream, "+", "-", count).Result()
			reverse(msgs)
		} else {
			msgs, err = r.client.XRange(ctx, stream, "-", "+").Result()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("redis read %s: %w", stream, err)
	}

	candles, skipped := decodeMessages(msgs)
	if skipped > 0 {
		slog.Warn("redis skipped undecodable bars", "stream", stream, "skipped", skipped)
	}
	return candles, nil
}

// LoadMarket is LoadBars converted to MarketData.
func (r *Reader) LoadMarket(ctx context.Context, stream string, count int64) (*model.MarketData, error) {
	candles, err := r.LoadBars(ctx, stream, count)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("redis: stream %s has no bars", stream)
	}
	return model.FromCandles(candles), nil
}

// Close closes the Redis client.
func (r *Reader) Close() error {
	return r.client.Close()
}

func decodeMessages(msgs []goredis.XMessage) ([]model.Candle, int) {
	candles := make([]model.Candle, 0, len(msgs))
	skipped := 0
	for _, msg := range msgs {
		var raw []byte
		switch v := msg.Values["data"].(type) {
		case string:
			raw = []byte(v)
		case []byte:
			raw = v
		default:
			skipped++
			continue
		}
		var c model.Candle
		if err := json.Unmarshal(raw, &c); err != nil {
			slog.Debug("redis bar decode failed", "id", msg.ID, "error", err)
			skipped++
			continue
		}
		candles = append(candles, c)
	}
	return candles, skipped
}

func reverse(msgs []goredis.XMessage) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
