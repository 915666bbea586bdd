package pricing

import "fmt"

// EditType selects the base price table for a deliverable.
type EditType string

const (
	EditBasic      EditType = "basic"
	EditAdvanced   EditType = "advanced"
	EditColourOnly EditType = "colour_only"
)

// ColourGrade is the colour grading level applied to a deliverable.
type ColourGrade string

const (
	ColourNone     ColourGrade = "none"
	ColourStandard ColourGrade = "standard"
	ColourAdvanced ColourGrade = "advanced"
)

// SubtitleLevel is the subtitle treatment applied to a deliverable.
type SubtitleLevel string

const (
	SubtitlesNone   SubtitleLevel = "none"
	SubtitlesBasic  SubtitleLevel = "basic"
	SubtitlesStyled SubtitleLevel = "styled"
)

// RushType is the expedited-turnaround surcharge tier.
type RushType string

const (
	RushNone      RushType = "none"
	RushStandard  RushType = "standard"
	RushEmergency RushType = "emergency"
)

// Deliverable is the strongly-typed pricing input for a single video output.
// It is constructed per save request; edits resubmit the whole input.
type Deliverable struct {
	VideoLengthSeconds int
	EditType           EditType
	ColourGrading      ColourGrade
	Subtitles          SubtitleLevel
	AdditionalFormats  int
	CustomMusic        bool
	CustomMusicCost    float64
	CustomGraphics     bool
	CustomGraphicsCost float64
	Rush               RushType
}

// Bracket returns the duration bracket the deliverable prices under.
func (d Deliverable) Bracket() Bracket {
	return DurationBracket(d.VideoLengthSeconds)
}

// DeliverableCost computes the price of a deliverable against a rate table
// snapshot. The rush surcharge multiplies the entire pre-rush subtotal and is
// applied last; the multi-format rate scales with the base price only. The
// result is rounded to cents, half away from zero.
func DeliverableCost(d Deliverable, rates Rates) float64 {
	bracket := d.Bracket()

	var base float64
	if d.EditType == EditColourOnly {
		// Colour-only with no grading level selected has no base table to
		// read from and prices at 0; validation upstream may disallow it.
		if d.ColourGrading != ColourNone {
			base = rates.Value(colourKey(d.ColourGrading, bracket))
		}
	} else {
		base = rates.Value(fmt.Sprintf("edit_%s_%s", d.EditType, bracket))
	}

	total := base

	if d.EditType != EditColourOnly && d.ColourGrading != ColourNone {
		total += rates.Value(colourKey(d.ColourGrading, bracket))
	}

	switch d.Subtitles {
	case SubtitlesBasic:
		total += rates.Value(subtitlesKey(bracket))
	case SubtitlesStyled:
		total += rates.Value(subtitlesKey(bracket)) * rates.ValueOr(KeyStyledSubtitlesMultiplier, DefaultStyledSubtitlesMultiplier)
	}

	if d.AdditionalFormats > 0 {
		total += float64(d.AdditionalFormats) * rates.ValueOr(KeyMultiformatRate, DefaultMultiformatRate) * base
	}

	if d.CustomMusic {
		total += d.CustomMusicCost
	}
	if d.CustomGraphics {
		total += d.CustomGraphicsCost
	}

	switch d.Rush {
	case RushStandard:
		total *= 1 + rates.ValueOr(KeyRushStandard, DefaultRushStandard)
	case RushEmergency:
		total *= 1 + rates.ValueOr(KeyRushEmergency, DefaultRushEmergency)
	}

	return roundCents(total)
}

func colourKey(grade ColourGrade, bracket Bracket) string {
	return fmt.Sprintf("colour_%s_%s", grade, bracket)
}

func subtitlesKey(bracket Bracket) string {
	return fmt.Sprintf("subtitles_basic_%s", bracket)
}
