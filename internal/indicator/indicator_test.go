package indicator

import (
	"errors"
	"math"
	"testing"

	"github.com/NeaByteLab/Trading-Lib-sub003/internal/calc"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/mathx"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/model"
	"github.com/NeaByteLab/Trading-Lib-sub003/internal/source"
)

var builtins = Builtins()

func mustLookup(t *testing.T, name string) Indicator {
	t.Helper()
	ind, err := builtins.Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return ind
}

func calculate(t *testing.T, name string, data model.Data, cfg Config) Result {
	t.Helper()
	res, err := mustLookup(t, name).Calculate(data, cfg)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return res
}

// ────────────────────────────────────────────────────────────
// Contract
// ────────────────────────────────────────────────────────────

func TestBuiltins_OutputAlignedToInput(t *testing.T) {
	md := walk(60)
	for _, name := range builtins.Names() {
		ind := mustLookup(t, name)
		res, err := ind.Calculate(md, Config{})
		if errors.Is(err, ErrNotImplemented) {
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if len(res.Values) != md.Len() {
			t.Errorf("%s: %d values for %d bars", name, len(res.Values), md.Len())
		}
		for key, s := range res.Metadata.Series {
			if len(s) != md.Len() {
				t.Errorf("%s.%s: %d values for %d bars", name, key, len(s), md.Len())
			}
		}
		if mathx.FirstValid(res.Values) == md.Len() {
			t.Errorf("%s: no valid values over %d bars", name, md.Len())
		}
	}
}

func TestSMA_OnSeries(t *testing.T) {
	res := calculate(t, "sma", model.Series{1, 2, 3, 4, 5}, Config{Length: 3})
	assertSeries(t, "sma", res.Values, []float64{nan, nan, 2, 3, 4}, 1e-12)
	if res.Metadata.Length != 3 || res.Metadata.Source != source.Close {
		t.Errorf("metadata = %+v", res.Metadata)
	}
}

func TestSMA_LengthBeyondDataIsAllNaN(t *testing.T) {
	res := calculate(t, "sma", model.Series{1, 2, 3}, Config{Length: 10})
	if mathx.CountNaN(res.Values) != 3 {
		t.Errorf("got %v, want all NaN", res.Values)
	}
}

func TestDefaultsApplied(t *testing.T) {
	res := calculate(t, "rsi", walk(30), Config{})
	if res.Metadata.Length != 14 {
		t.Errorf("rsi default length = %d, want 14", res.Metadata.Length)
	}
	res = calculate(t, "bb", walk(30), Config{})
	if res.Metadata.Length != 20 || res.Metadata.Multiplier != 2 {
		t.Errorf("bb defaults = %+v", res.Metadata)
	}
	res = calculate(t, "cci", walk(30), Config{})
	if res.Metadata.Source != source.HLC3 {
		t.Errorf("cci default source = %s, want hlc3", res.Metadata.Source)
	}
}

func TestSourceSelection(t *testing.T) {
	md := walk(10)
	res := calculate(t, "sma", md, Config{Length: 1, Source: "hl2"})
	assertSeries(t, "sma(hl2,1)", res.Values, md.HL2(), 1e-12)

	res = calculate(t, "sma", md, Config{Length: 1, Source: "typical"})
	assertSeries(t, "sma(hlc3,1)", res.Values, md.HLC3(), 1e-12)
	if res.Metadata.Source != source.HLC3 {
		t.Errorf("source = %s, want hlc3", res.Metadata.Source)
	}
}

func TestUnknownSourceFallsBackToClose(t *testing.T) {
	md := walk(10)
	res := calculate(t, "sma", md, Config{Length: 1, Source: "vwap"})
	assertSeries(t, "sma", res.Values, md.Close, 1e-12)
	if res.Metadata.Source != source.Close {
		t.Errorf("source = %s, want close", res.Metadata.Source)
	}
}

func TestVolumeSourceWithoutVolumeFails(t *testing.T) {
	md := bars([]float64{10, 12}, []float64{8, 9}, []float64{9, 11})
	_, err := mustLookup(t, "sma").Calculate(md, Config{Length: 1, Source: "volume"})
	if !errors.Is(err, source.ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
	if ErrorKind(err) != "missing_field" {
		t.Errorf("kind = %s", ErrorKind(err))
	}
}

func TestVolumeIndicatorsRequireVolume(t *testing.T) {
	md := bars([]float64{10, 12}, []float64{8, 9}, []float64{9, 11})
	for _, name := range []string{"obv", "vwma"} {
		if err := mustLookup(t, name).ValidateInput(md, Config{}); !errors.Is(err, source.ErrMissingField) {
			t.Errorf("%s: err = %v, want ErrMissingField", name, err)
		}
	}
}

func TestValidation_Shape(t *testing.T) {
	ind := mustLookup(t, "sma")
	cases := []struct {
		name string
		data model.Data
		want error
	}{
		{"nil", nil, source.ErrEmptyInput},
		{"empty series", model.Series{}, source.ErrEmptyInput},
		{"empty market", &model.MarketData{}, source.ErrEmptyInput},
		{"short high", &model.MarketData{
			Open: []float64{1, 2}, High: []float64{1}, Low: []float64{1, 2}, Close: []float64{1, 2},
		}, source.ErrLengthMismatch},
		{"no low", &model.MarketData{
			Open: []float64{1, 2}, High: []float64{1, 2}, Close: []float64{1, 2},
		}, source.ErrMissingField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ind.Calculate(tc.data, Config{}); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidation_Parameters(t *testing.T) {
	md := walk(30)
	cases := []struct {
		name string
		ind  string
		cfg  Config
		want error
	}{
		{"negative length", "sma", Config{Length: -1}, source.ErrInvalidLength},
		{"negative multiplier", "bb", Config{Multiplier: -2}, source.ErrInvalidMultiplier},
		{"infinite multiplier", "keltner", Config{Multiplier: math.Inf(1)}, source.ErrInvalidMultiplier},
		{"fractional param", "apo", Config{Params: map[string]float64{"fastLength": 1.5}}, source.ErrInvalidParam},
		{"zero param", "macd", Config{Params: map[string]float64{"signalLength": 0}}, source.ErrInvalidParam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ind := mustLookup(t, tc.ind)
			if err := ind.ValidateInput(md, tc.cfg); !errors.Is(err, tc.want) {
				t.Errorf("ValidateInput err = %v, want %v", err, tc.want)
			}
			if _, err := ind.Calculate(md, tc.cfg); !errors.Is(err, tc.want) {
				t.Errorf("Calculate err = %v, want %v", err, tc.want)
			}
			if ErrorKind(tc.want) != "parameter" {
				t.Errorf("kind = %s, want parameter", ErrorKind(tc.want))
			}
		})
	}
}

func TestUnknownParamsIgnored(t *testing.T) {
	cfg := Config{Length: 3}.With("bogus", 1.5)
	res := calculate(t, "sma", model.Series{1, 2, 3, 4, 5}, cfg)
	assertSeries(t, "sma", res.Values, []float64{nan, nan, 2, 3, 4}, 1e-12)
	if res.Metadata.Params != nil {
		t.Errorf("params = %v, want none", res.Metadata.Params)
	}
}

func TestOHLCIndicatorRejectsSeries(t *testing.T) {
	_, err := mustLookup(t, "atr").Calculate(model.Series{1, 2, 3}, Config{})
	if !errors.Is(err, source.ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	md := walk(40)
	before := mathx.Clone(md.Close)
	for _, name := range []string{"sma", "rsi", "bb", "macd", "stoch"} {
		calculate(t, name, md, Config{})
	}
	assertSeries(t, "close", md.Close, before, 0)
}

// ────────────────────────────────────────────────────────────
// Factory
// ────────────────────────────────────────────────────────────

func TestNewOscillator_PassesParams(t *testing.T) {
	var gotLength, gotExtra int
	ind, err := NewOscillator("Recorder", "records its arguments", func(src []float64, length int, extra ...int) Output {
		gotLength, gotExtra = length, extra[0]
		return Output{Values: calc.SMA(src, length)}
	}, 4, Param{Name: "lag", Default: 2})
	if err != nil {
		t.Fatalf("NewOscillator: %v", err)
	}
	if ind.Name() != "recorder" {
		t.Errorf("name = %q, want lowercased", ind.Name())
	}

	res, err := ind.Calculate(model.Series{1, 2, 3, 4, 5}, Config{Params: map[string]float64{"lag": 7}})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if gotLength != 4 || gotExtra != 7 {
		t.Errorf("called with length=%d extra=%d, want 4, 7", gotLength, gotExtra)
	}
	if res.Metadata.Params["lag"] != 7 {
		t.Errorf("metadata params = %v", res.Metadata.Params)
	}
	assertClose(t, "last", res.Last(), 3.5, 1e-12)
}

func TestNewVolatility_UsesDefaultMultiplier(t *testing.T) {
	var gotMult float64
	ind, err := NewVolatility("custom_bands", "", func(src []float64, length int, mult float64, _ ...int) Output {
		gotMult = mult
		return Output{Values: calc.SMA(src, length)}
	}, 2, 3.5)
	if err != nil {
		t.Fatalf("NewVolatility: %v", err)
	}
	if _, err := ind.Calculate(model.Series{1, 2, 3}, Config{}); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if gotMult != 3.5 {
		t.Errorf("multiplier = %v, want 3.5", gotMult)
	}
}

func TestMake_RejectsBadDescriptors(t *testing.T) {
	sma := series(calc.SMA)
	cases := []struct {
		name string
		d    Descriptor
	}{
		{"no name", Descriptor{Shape: Oscillator, DefaultLength: 3, Series: sma}},
		{"oscillator without fn", Descriptor{Name: "x", Shape: Oscillator, DefaultLength: 3}},
		{"oscillator without length", Descriptor{Name: "x", Shape: Oscillator, Series: sma}},
		{"volatility without multiplier", Descriptor{Name: "x", Shape: Volatility, DefaultLength: 3, Bands: bollinger}},
		{"generic without fn", Descriptor{Name: "x", Shape: Generic}},
		{"default above max", Descriptor{Name: "x", Shape: Oscillator, DefaultLength: 30, MaxLength: 20, Series: sma}},
		{"bad param", Descriptor{Name: "x", Shape: Oscillator, DefaultLength: 3, Series: sma, Params: []Param{{Name: "k"}}}},
		{"unknown shape", Descriptor{Name: "x", Shape: Shape(9)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Make(tc.d); !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("err = %v, want ErrInvalidDescriptor", err)
			}
		})
	}
}

func TestMake_EnforcesLengthBounds(t *testing.T) {
	ind := MustMake(Descriptor{
		Name: "bounded", Shape: Oscillator, DefaultLength: 5, MinLength: 2, MaxLength: 10,
		Series: series(calc.SMA),
	})
	data := model.Series{1, 2, 3}
	for _, length := range []int{1, 11} {
		if err := ind.ValidateInput(data, Config{Length: length}); !errors.Is(err, source.ErrInvalidLength) {
			t.Errorf("length %d: err = %v, want ErrInvalidLength", length, err)
		}
	}
	if err := ind.ValidateInput(data, Config{Length: 10}); err != nil {
		t.Errorf("length 10: %v", err)
	}
}

func TestGeneric_ResultLengthChecked(t *testing.T) {
	ind := MustMake(Descriptor{
		Name: "short", Shape: Generic,
		Compute: func(data model.Data, _ Args) (Output, error) {
			return Output{Values: make([]float64, data.Len()-1)}, nil
		},
	})
	if _, err := ind.Calculate(model.Series{1, 2}, Config{}); !errors.Is(err, source.ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestNotImplemented(t *testing.T) {
	ind := mustLookup(t, "knn_classifier")
	if _, err := ind.Calculate(walk(5), Config{}); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("err = %v, want ErrNotImplemented", err)
	}
	if err := ind.ValidateInput(walk(5), Config{}); ErrorKind(err) != "not_implemented" {
		t.Errorf("kind = %s", ErrorKind(err))
	}
}

func TestShapeString(t *testing.T) {
	for s, want := range map[Shape]string{Generic: "generic", Oscillator: "oscillator", Volatility: "volatility", Shape(7): "unknown"} {
		if s.String() != want {
			t.Errorf("%d: got %q, want %q", s, s.String(), want)
		}
	}
}

// ────────────────────────────────────────────────────────────
// Registry
// ────────────────────────────────────────────────────────────

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	ind := MustMake(Descriptor{Name: "sma", Shape: Oscillator, DefaultLength: 3, Series: series(calc.SMA)})
	if err := r.Register(ind); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(ind); err == nil {
		t.Error("duplicate Register succeeded")
	}
	if got, err := r.Lookup(" SMA "); err != nil || got != ind {
		t.Errorf("Lookup = %v, %v", got, err)
	}
	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownIndicator) {
		t.Errorf("err = %v, want ErrUnknownIndicator", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestBuiltins_NamesSorted(t *testing.T) {
	names := builtins.Names()
	if len(names) != builtins.Len() {
		t.Fatalf("Names has %d entries, Len %d", len(names), builtins.Len())
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}
