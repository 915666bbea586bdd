package pricing_test

import (
	"testing"

	"callsheet/internal/pricing"
)

func TestDurationBracketBoundaries(t *testing.T) {
	cases := []struct {
		seconds int
		want    pricing.Bracket
	}{
		{5, pricing.Bracket5To10},
		{10, pricing.Bracket5To10},
		{11, pricing.Bracket15To20},
		{20, pricing.Bracket15To20},
		{21, pricing.Bracket30To45},
		{45, pricing.Bracket30To45},
		{46, pricing.Bracket60},
		{60, pricing.Bracket60},
		{61, pricing.Bracket90},
		{90, pricing.Bracket90},
		{91, pricing.Bracket120To180},
		{180, pricing.Bracket120To180},
		{181, pricing.Bracket180To240},
		{240, pricing.Bracket180To240},
		{241, pricing.Bracket300Plus},
		{3600, pricing.Bracket300Plus},
	}
	for _, tc := range cases {
		if got := pricing.DurationBracket(tc.seconds); got != tc.want {
			t.Errorf("DurationBracket(%d) = %s, want %s", tc.seconds, got, tc.want)
		}
	}
}

func TestDurationBracketIsTotal(t *testing.T) {
	known := make(map[pricing.Bracket]struct{})
	for _, b := range pricing.AllBrackets() {
		known[b] = struct{}{}
	}
	for seconds := 0; seconds <= 600; seconds++ {
		b := pricing.DurationBracket(seconds)
		if _, ok := known[b]; !ok {
			t.Fatalf("DurationBracket(%d) returned unknown bracket %q", seconds, b)
		}
	}
}

func TestDurationBracketSubFiveFallsThrough(t *testing.T) {
	// No bracket claims [0,4]; such values land in 300_plus. Documented
	// behavior pending product confirmation.
	for _, seconds := range []int{0, 1, 4} {
		if got := pricing.DurationBracket(seconds); got != pricing.Bracket300Plus {
			t.Errorf("DurationBracket(%d) = %s, want %s", seconds, got, pricing.Bracket300Plus)
		}
	}
}
