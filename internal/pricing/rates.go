package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Rates is an immutable snapshot of the studio rate table: a flat mapping
// from namespaced key (e.g. "edit_basic_90", "camera_a7siii_half") to a
// numeric value. The settings surface mutates the persisted table; pricing
// only ever reads a snapshot taken at calculation time.
type Rates map[string]float64

// Multiplier defaults applied when the rate table has no explicit entry.
const (
	DefaultMultiformatRate           = 0.20
	DefaultStyledSubtitlesMultiplier = 2.0
	DefaultRushStandard              = 0.25
	DefaultRushEmergency             = 0.50
)

// Rate table keys for the shared multipliers.
const (
	KeyMultiformatRate           = "multiformat_additional_rate"
	KeyStyledSubtitlesMultiplier = "styled_subtitles_multiplier"
	KeyRushStandard              = "rush_standard"
	KeyRushEmergency             = "rush_emergency"
)

// Value returns the rate for key, or 0 when the key is unconfigured. An
// unconfigured bracket or category silently prices at 0; callers that care
// should log a warning rather than fail the calculation.
func (r Rates) Value(key string) float64 {
	return r[key]
}

// ValueOr returns the rate for key, falling back to def when the key is
// absent. Used for the multiplier keys that carry documented defaults.
func (r Rates) ValueOr(key string, def float64) float64 {
	if v, ok := r[key]; ok {
		return v
	}
	return def
}

// Amount parses a free-form numeric string from a settings or equipment
// form. Invalid or empty input is treated as 0 so a stray character in a
// cost field never fails a save.
func Amount(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// roundCents rounds to two decimal places, half away from zero.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
