package source

import (
	"errors"
	"math"
	"testing"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
)

func market() *model.MarketData {
	return &model.MarketData{
		Open:  []float64{9, 10, 11},
		High:  []float64{10, 12, 13},
		Low:   []float64{8, 9, 10},
		Close: []float64{9, 11, 12},
	}
}

func TestParse_TagsAndAliases(t *testing.T) {
	cases := map[string]Tag{
		"":         Close,
		"close":    Close,
		" HLC3 ":   HLC3,
		"typical":  HLC3,
		"median":   HL2,
		"ohlc4":    OHLC4,
		"weighted": HLCC4,
		"Volume":   Volume,
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParse_UnknownFails(t *testing.T) {
	if _, err := Parse("vwap"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
}

func TestNormalize_FallsBackToClose(t *testing.T) {
	if got := Normalize("nonsense"); got != Close {
		t.Errorf("Normalize(nonsense) = %s, want close", got)
	}
}

func TestExtract_MarketTags(t *testing.T) {
	md := market()
	got, err := Extract(md, HL2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{9, 10.5, 11.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hl2[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	high, _ := Extract(md, High)
	high[0] = 999
	if md.High[0] == 999 {
		t.Error("Extract must return a copy, input was mutated")
	}
}

func TestExtract_UnknownTagUsesClose(t *testing.T) {
	got, err := Extract(market(), Tag("bogus"))
	if err != nil {
		t.Fatal(err)
	}
	if got[2] != 12 {
		t.Errorf("expected close fallback, got %v", got)
	}
}

func TestExtract_VolumeMissingFails(t *testing.T) {
	_, err := Extract(market(), Volume)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if Kind(err) != KindMissingField {
		t.Errorf("Kind = %s, want %s", Kind(err), KindMissingField)
	}
}

func TestExtract_VolumePresent(t *testing.T) {
	md := market()
	md.Volume = []float64{100, 200, 300}
	got, err := Extract(md, Volume)
	if err != nil {
		t.Fatal(err)
	}
	if got[1] != 200 {
		t.Errorf("volume[1] = %v", got[1])
	}
}

func TestExtract_SeriesIgnoresTag(t *testing.T) {
	got, err := Extract(model.Series{1, 2, 3}, High)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[2] != 3 {
		t.Errorf("expected raw series back, got %v", got)
	}
}

func TestValidateMarket(t *testing.T) {
	md := market()
	if err := ValidateMarket(md); err != nil {
		t.Fatalf("valid data rejected: %v", err)
	}

	short := market()
	short.Low = short.Low[:2]
	if err := ValidateMarket(short); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	noOpen := market()
	noOpen.Open = nil
	if err := ValidateMarket(noOpen); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}

	badVol := market()
	badVol.Volume = []float64{1}
	if err := ValidateMarket(badVol); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch for volume, got %v", err)
	}

	if err := ValidateMarket(&model.MarketData{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if Kind(ValidateMarket(short)) != KindShape {
		t.Error("length mismatch should classify as shape error")
	}
}

func TestValidateData_Series(t *testing.T) {
	if err := ValidateData(model.Series{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if err := ValidateData(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for nil, got %v", err)
	}
	if err := ValidateData(model.Series{1}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireMarket_RejectsSeries(t *testing.T) {
	if _, err := RequireMarket(model.Series{1, 2}); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestValidateLength(t *testing.T) {
	cases := []struct {
		length, min, max int
		ok               bool
	}{
		{14, 1, 0, true},
		{0, 1, 0, false},
		{-3, 1, 0, false},
		{1, 2, 0, false},
		{500, 2, 500, true},
		{501, 2, 500, false},
	}
	for _, tc := range cases {
		err := ValidateLength(tc.length, tc.min, tc.max)
		if tc.ok && err != nil {
			t.Errorf("ValidateLength(%d,%d,%d): unexpected %v", tc.length, tc.min, tc.max, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidLength) {
			t.Errorf("ValidateLength(%d,%d,%d): expected ErrInvalidLength, got %v", tc.length, tc.min, tc.max, err)
		}
	}
}

func TestValidateMultiplier(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := ValidateMultiplier(m); !errors.Is(err, ErrInvalidMultiplier) {
			t.Errorf("ValidateMultiplier(%v): expected ErrInvalidMultiplier, got %v", m, err)
		}
	}
	if err := ValidateMultiplier(2); err != nil {
		t.Errorf("ValidateMultiplier(2): %v", err)
	}
	if Kind(ValidateMultiplier(0)) != KindParameter {
		t.Error("multiplier error should classify as parameter error")
	}
}
