package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

func vol(v float64) *float64 { return &v }

func seed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer w.Close()

	base := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)
	var candles []model.Candle
	// Inserted out of order to check the read ordering.
	for _, i := range []int{3, 0, 4, 1, 2} {
		px := 100 + float64(i)
		candles = append(candles, model.Candle{
			Symbol: "BTCUSD", Timeframe: "1m", TS: base.Add(time.Duration(i) * time.Minute),
			Open: px, High: px + 1, Low: px - 1, Close: px + 0.5, Volume: vol(10 * float64(i+1)),
		})
	}
	candles = append(candles, model.Candle{
		Symbol: "ETHUSD", Timeframe: "1m", TS: base,
		Open: 10, High: 11, Low: 9, Close: 10.5,
	})
	if err := w.InsertBars(context.Background(), candles); err != nil {
		t.Fatalf("InsertBars: %v", err)
	}
	return path
}

func open(t *testing.T, path string) *Reader {
	t.Helper()
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestLoadBars_Ascending(t *testing.T) {
	r := open(t, seed(t))
	candles, err := r.LoadBars(context.Background(), "BTCUSD", "1m", 0)
	if err != nil {
		t.Fatalf("LoadBars: %v", err)
	}
	if len(candles) != 5 {
		t.Fatalf("got %d bars, want 5", len(candles))
	}
	for i, c := range candles {
		if c.Open != 100+float64(i) {
			t.Errorf("bar %d open = %v", i, c.Open)
		}
		if c.Volume == nil || *c.Volume != 10*float64(i+1) {
			t.Errorf("bar %d volume = %v", i, c.Volume)
		}
		if i > 0 && !c.TS.After(candles[i-1].TS) {
			t.Errorf("bar %d not after bar %d", i, i-1)
		}
	}
}

func TestLoadBars_LimitKeepsMostRecent(t *testing.T) {
	r := open(t, seed(t))
	candles, err := r.LoadBars(context.Background(), "BTCUSD", "1m", 2)
	if err != nil {
		t.Fatalf("LoadBars: %v", err)
	}
	if len(candles) != 2 || candles[0].Open != 103 || candles[1].Open != 104 {
		t.Fatalf("got %+v, want the last two bars", candles)
	}
}

func TestLoadMarket(t *testing.T) {
	r := open(t, seed(t))
	md, err := r.LoadMarket(context.Background(), "BTCUSD", "1m", 0)
	if err != nil {
		t.Fatalf("LoadMarket: %v", err)
	}
	if md.Len() != 5 || !md.HasVolume() {
		t.Fatalf("md len=%d volume=%v", md.Len(), md.HasVolume())
	}
	if md.Close[4] != 104.5 {
		t.Errorf("last close = %v", md.Close[4])
	}

	eth, err := r.LoadMarket(context.Background(), "ETHUSD", "1m", 0)
	if err != nil {
		t.Fatalf("LoadMarket eth: %v", err)
	}
	if eth.HasVolume() {
		t.Error("NULL volume should leave MarketData without volume")
	}

	if _, err := r.LoadMarket(context.Background(), "DOGE", "1m", 0); err == nil {
		t.Error("expected error for missing series")
	}
}

func TestInsertBars_Upserts(t *testing.T) {
	path := seed(t)
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	ts := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)
	err = w.InsertBars(context.Background(), []model.Candle{
		{Symbol: "ETHUSD", Timeframe: "1m", TS: ts, Open: 1, High: 2, Low: 0.5, Close: 1.5},
	})
	w.Close()
	if err != nil {
		t.Fatalf("InsertBars: %v", err)
	}

	candles, err := open(t, path).LoadBars(context.Background(), "ETHUSD", "1m", 0)
	if err != nil {
		t.Fatalf("LoadBars: %v", err)
	}
	if len(candles) != 1 || candles[0].Close != 1.5 {
		t.Fatalf("got %+v, want replaced bar", candles)
	}
}

func TestListSeries(t *testing.T) {
	series, err := open(t, seed(t)).ListSeries(context.Background())
	if err != nil {
		t.Fatalf("ListSeries: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d series", len(series))
	}
	if series[0].Symbol != "BTCUSD" || series[0].Bars != 5 {
		t.Errorf("series[0] = %+v", series[0])
	}
	if got := series[0].Last.Sub(series[0].First); got != 4*time.Minute {
		t.Errorf("span = %v, want 4m", got)
	}
}
