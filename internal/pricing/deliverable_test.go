package pricing_test

import (
	"testing"

	"callsheet/internal/pricing"
)

func baseRates() pricing.Rates {
	return pricing.Rates{
		"edit_basic_90":       1000,
		"edit_advanced_90":    2000,
		"colour_standard_90":  200,
		"colour_advanced_90":  500,
		"subtitles_basic_90":  450,
		"edit_basic_5_10":     300,
		"colour_standard_5_10": 80,
	}
}

func TestBasicEditBasePrice(t *testing.T) {
	d := pricing.Deliverable{VideoLengthSeconds: 90, EditType: pricing.EditBasic}
	if got := pricing.DeliverableCost(d, baseRates()); got != 1000 {
		t.Fatalf("cost = %v, want 1000", got)
	}
}

func TestRushMultipliesEntireSubtotal(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditBasic,
		ColourGrading:      pricing.ColourStandard,
		Rush:               pricing.RushStandard,
	}
	// (1000 + 200) * 1.25
	if got := pricing.DeliverableCost(d, baseRates()); got != 1500.00 {
		t.Fatalf("cost = %v, want 1500.00", got)
	}
}

func TestStyledSubtitlesUseMultiplier(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditBasic,
		Subtitles:          pricing.SubtitlesStyled,
	}
	// 1000 + 450*2.0 (default multiplier)
	if got := pricing.DeliverableCost(d, baseRates()); got != 1900 {
		t.Fatalf("cost = %v, want 1900", got)
	}

	rates := baseRates()
	rates[pricing.KeyStyledSubtitlesMultiplier] = 3
	if got := pricing.DeliverableCost(d, rates); got != 2350 {
		t.Fatalf("cost with explicit multiplier = %v, want 2350", got)
	}
}

func TestAdditionalFormatsScaleWithBasePriceOnly(t *testing.T) {
	rates := pricing.Rates{
		"edit_basic_90":      2000,
		"colour_standard_90": 500,
	}
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditBasic,
		ColourGrading:      pricing.ColourStandard,
		AdditionalFormats:  2,
	}
	// 2000 + 500 + 2*0.20*2000 = 3300, not based on the 2500 running total.
	if got := pricing.DeliverableCost(d, rates); got != 3300 {
		t.Fatalf("cost = %v, want 3300", got)
	}
}

func TestColourOnlyUsesColourTableAsBase(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditColourOnly,
		ColourGrading:      pricing.ColourAdvanced,
	}
	if got := pricing.DeliverableCost(d, baseRates()); got != 500 {
		t.Fatalf("cost = %v, want 500", got)
	}
}

func TestColourOnlyWithoutGradingPricesAtZero(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditColourOnly,
		ColourGrading:      pricing.ColourNone,
		CustomMusic:        true,
		CustomMusicCost:    150,
	}
	// Zero base, but flat add-ons still apply.
	if got := pricing.DeliverableCost(d, baseRates()); got != 150 {
		t.Fatalf("cost = %v, want 150", got)
	}
}

func TestCustomCostsAppliedVerbatimBeforeRush(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditBasic,
		CustomMusic:        true,
		CustomMusicCost:    100,
		CustomGraphics:     true,
		CustomGraphicsCost: 50,
		Rush:               pricing.RushEmergency,
	}
	// (1000 + 100 + 50) * 1.50
	if got := pricing.DeliverableCost(d, baseRates()); got != 1725 {
		t.Fatalf("cost = %v, want 1725", got)
	}
}

func TestUnflaggedCustomCostsIgnored(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditBasic,
		CustomMusicCost:    100,
		CustomGraphicsCost: 50,
	}
	if got := pricing.DeliverableCost(d, baseRates()); got != 1000 {
		t.Fatalf("cost = %v, want 1000", got)
	}
}

func TestUnrelatedRatesDoNotAffectResult(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditBasic,
		Subtitles:          pricing.SubtitlesBasic,
	}
	rates := baseRates()
	before := pricing.DeliverableCost(d, rates)

	rates["edit_advanced_90"] = 9999
	rates["camera_fx6_full"] = 1234
	rates["colour_advanced_5_10"] = 777
	after := pricing.DeliverableCost(d, rates)

	if before != after {
		t.Fatalf("unrelated rate change moved cost from %v to %v", before, after)
	}
}

func TestMissingRateKeysPriceAtZero(t *testing.T) {
	d := pricing.Deliverable{
		VideoLengthSeconds: 90,
		EditType:           pricing.EditAdvanced,
		ColourGrading:      pricing.ColourAdvanced,
		Subtitles:          pricing.SubtitlesStyled,
		Rush:               pricing.RushStandard,
	}
	if got := pricing.DeliverableCost(d, pricing.Rates{}); got != 0 {
		t.Fatalf("cost with empty rates = %v, want 0", got)
	}
}

func TestCostRoundsToCents(t *testing.T) {
	rates := pricing.Rates{"edit_basic_90": 100.555}
	d := pricing.Deliverable{VideoLengthSeconds: 90, EditType: pricing.EditBasic}
	if got := pricing.DeliverableCost(d, rates); got != 100.56 {
		t.Fatalf("cost = %v, want 100.56", got)
	}
}

func TestAmountParsing(t *testing.T) {
	cases := map[string]float64{
		"":        0,
		"  ":      0,
		"abc":     0,
		"12.5":    12.5,
		" 99 ":    99,
		"-3":      -3,
		"1e3":     1000,
		"NaN":     0,
		"+Inf":    0,
	}
	for input, want := range cases {
		if got := pricing.Amount(input); got != want {
			t.Errorf("Amount(%q) = %v, want %v", input, got, want)
		}
	}
}
