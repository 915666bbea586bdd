package pricing

// Bracket identifies one of the eight fixed video-duration ranges used for
// rate lookups.
type Bracket string

const (
	Bracket5To10    Bracket = "5_10"
	Bracket15To20   Bracket = "15_20"
	Bracket30To45   Bracket = "30_45"
	Bracket60       Bracket = "60"
	Bracket90       Bracket = "90"
	Bracket120To180 Bracket = "120_180"
	Bracket180To240 Bracket = "180_240"
	Bracket300Plus  Bracket = "300_plus"
)

// DurationBracket maps a video length in seconds onto its pricing bracket.
// The mapping is total: every integer lands in exactly one bracket. Values
// under 5 seconds fall through to Bracket300Plus because no bracket claims
// [0,4] — preserved for compatibility with the historical table, pending
// product confirmation that sub-5-second videos should price differently.
func DurationBracket(seconds int) Bracket {
	switch {
	case seconds >= 5 && seconds <= 10:
		return Bracket5To10
	case seconds >= 11 && seconds <= 20:
		return Bracket15To20
	case seconds >= 21 && seconds <= 45:
		return Bracket30To45
	case seconds >= 46 && seconds <= 60:
		return Bracket60
	case seconds >= 61 && seconds <= 90:
		return Bracket90
	case seconds >= 91 && seconds <= 180:
		return Bracket120To180
	case seconds >= 181 && seconds <= 240:
		return Bracket180To240
	default:
		return Bracket300Plus
	}
}

// AllBrackets returns the ordered list of pricing brackets.
func AllBrackets() []Bracket {
	return []Bracket{
		Bracket5To10,
		Bracket15To20,
		Bracket30To45,
		Bracket60,
		Bracket90,
		Bracket120To180,
		Bracket180To240,
		Bracket300Plus,
	}
}
