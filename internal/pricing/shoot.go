package pricing

import "fmt"

// ShootType distinguishes half-day and full-day bookings.
type ShootType string

const (
	ShootHalfDay ShootType = "half_day"
	ShootFullDay ShootType = "full_day"
)

// DayKind is the half/full rate suffix used by day-priced line items.
type DayKind string

const (
	DayHalf DayKind = "half"
	DayFull DayKind = "full"
)

// TravelMethod describes how the crew reaches the shoot location.
type TravelMethod string

const (
	TravelNone    TravelMethod = "none"
	TravelDriving TravelMethod = "driving"
	TravelFlying  TravelMethod = "flying"
)

// AddOn is an optional day-priced equipment or crew add-on. Its day kind is
// independently selectable from the shoot's own day type: a full-day shoot
// can carry a half-day second shooter.
type AddOn struct {
	Enabled bool
	Day     DayKind
}

// EquipmentItem is a free-form extra equipment line with its own cost.
type EquipmentItem struct {
	Name string
	Cost float64
}

// Shoot is the strongly-typed pricing input for a filming day.
type Shoot struct {
	Type       ShootType
	CameraBody string

	SecondShooter AddOn
	SoundKit      AddOn
	Lighting      AddOn
	Gimbal        AddOn

	ExtraEquipment []EquipmentItem

	Travel      TravelMethod
	Location    string
	DistanceKm  float64
	AirfareCost float64

	AccommodationNights   int
	AccommodationPerNight float64
}

// Day returns the rate suffix for the shoot's own day type.
func (s Shoot) Day() DayKind {
	if s.Type == ShootHalfDay {
		return DayHalf
	}
	return DayFull
}

// ShootCost computes the price of a shoot day against a rate table snapshot.
// Driving travel is billed round trip at perKmRate. The result is rounded to
// cents, half away from zero.
func ShootCost(s Shoot, rates Rates, perKmRate float64) float64 {
	day := s.Day()

	total := rates.Value(fmt.Sprintf("shoot_day_%s", day))
	if s.CameraBody != "" {
		total += rates.Value(fmt.Sprintf("camera_%s_%s", s.CameraBody, day))
	}

	addOns := []struct {
		key   string
		addOn AddOn
	}{
		{"second_shooter", s.SecondShooter},
		{"sound_kit", s.SoundKit},
		{"lighting", s.Lighting},
		{"gimbal", s.Gimbal},
	}
	for _, a := range addOns {
		if !a.addOn.Enabled {
			continue
		}
		addOnDay := a.addOn.Day
		if addOnDay == "" {
			addOnDay = day
		}
		total += rates.Value(fmt.Sprintf("%s_%s", a.key, addOnDay))
	}

	for _, item := range s.ExtraEquipment {
		total += item.Cost
	}

	switch s.Travel {
	case TravelDriving:
		if s.DistanceKm > 0 {
			total += s.DistanceKm * 2 * perKmRate
		}
	case TravelFlying:
		total += s.AirfareCost
	}

	if s.AccommodationNights > 0 && s.AccommodationPerNight > 0 {
		total += float64(s.AccommodationNights) * s.AccommodationPerNight
	}

	return roundCents(total)
}
