package indicator

import (
	"log/slog"
	"strconv"
	"strings"
)

// Spec asks the engine for one indicator with one configuration.
type Spec struct {
	Type   string // registry name, e.g. "rsi"
	Name   string // optional output label
	Config Config
}

// Label returns Name if set, otherwise "TYPE_LENGTH" (e.g. "RSI_14"), or
// just "TYPE" for indicators without a length.
func (s Spec) Label(length int) string {
	if s.Name != "" {
		return s.Name
	}
	typ := strings.ToUpper(s.Type)
	if length <= 0 {
		return typ
	}
	return typ + "_" + strconv.Itoa(length)
}

// DefaultSpecs is the indicator set used when nothing is configured.
func DefaultSpecs() []Spec {
	return []Spec{
		{Type: "sma", Config: Config{Length: 20}},
		{Type: "ema", Config: Config{Length: 9}},
		{Type: "ema", Config: Config{Length: 21}},
		{Type: "rsi", Config: Config{Length: 14}},
		{Type: "atr", Config: Config{Length: 14}},
		{Type: "bb", Config: Config{Length: 20, Multiplier: 2}},
		{Type: "macd"},
	}
}

// ParseSpecs parses "TYPE[:LENGTH],..." into specs, e.g.
// "SMA:9,EMA:21,RSI:14,MACD". Entries with a bad length are skipped.
// Returns defaults if input is empty or nothing parses.
func ParseSpecs(s string) []Spec {
	if strings.TrimSpace(s) == "" {
		return DefaultSpecs()
	}

	var specs []Spec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens := strings.SplitN(part, ":", 2)
		typ := strings.ToLower(strings.TrimSpace(tokens[0]))
		if typ == "" {
			continue
		}
		spec := Spec{Type: typ}
		if len(tokens) == 2 {
			length, err := strconv.Atoi(strings.TrimSpace(tokens[1]))
			if err != nil || length <= 0 {
				slog.Warn("skipping invalid indicator spec", "spec", part)
				continue
			}
			spec.Config.Length = length
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		slog.Warn("no valid indicator specs parsed, using defaults", "input", s)
		return DefaultSpecs()
	}
	return specs
}
