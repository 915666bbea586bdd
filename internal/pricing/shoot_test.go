package pricing_test

import (
	"testing"

	"callsheet/internal/pricing"
)

func shootRates() pricing.Rates {
	return pricing.Rates{
		"shoot_day_half":      800,
		"shoot_day_full":      1400,
		"camera_a7siii_half":  150,
		"camera_a7siii_full":  250,
		"camera_fx6_full":     400,
		"second_shooter_half": 350,
		"second_shooter_full": 600,
		"sound_kit_half":      100,
		"sound_kit_full":      160,
		"lighting_full":       220,
		"gimbal_half":         90,
	}
}

func TestShootBaseAndCamera(t *testing.T) {
	s := pricing.Shoot{Type: pricing.ShootFullDay, CameraBody: "fx6"}
	if got := pricing.ShootCost(s, shootRates(), 5); got != 1800 {
		t.Fatalf("cost = %v, want 1800", got)
	}
}

func TestAddOnDayIndependentOfShootDay(t *testing.T) {
	s := pricing.Shoot{
		Type:          pricing.ShootFullDay,
		CameraBody:    "a7siii",
		SecondShooter: pricing.AddOn{Enabled: true, Day: pricing.DayHalf},
	}
	// 1400 + 250 + 350 (half-day shooter on a full-day shoot)
	if got := pricing.ShootCost(s, shootRates(), 5); got != 2000 {
		t.Fatalf("cost = %v, want 2000", got)
	}
}

func TestAddOnDayDefaultsToShootDay(t *testing.T) {
	s := pricing.Shoot{
		Type:     pricing.ShootHalfDay,
		SoundKit: pricing.AddOn{Enabled: true},
	}
	// 800 + 100 (sound kit inherits the shoot's half day)
	if got := pricing.ShootCost(s, shootRates(), 5); got != 900 {
		t.Fatalf("cost = %v, want 900", got)
	}
}

func TestDrivingTravelBilledRoundTrip(t *testing.T) {
	s := pricing.Shoot{
		Type:       pricing.ShootHalfDay,
		Travel:     pricing.TravelDriving,
		DistanceKm: 50,
	}
	// 800 + 50*2*5
	if got := pricing.ShootCost(s, shootRates(), 5); got != 1300 {
		t.Fatalf("cost = %v, want 1300", got)
	}
}

func TestFlyingTravelAddsAirfare(t *testing.T) {
	s := pricing.Shoot{
		Type:        pricing.ShootFullDay,
		Travel:      pricing.TravelFlying,
		AirfareCost: 420.50,
	}
	if got := pricing.ShootCost(s, shootRates(), 5); got != 1820.50 {
		t.Fatalf("cost = %v, want 1820.50", got)
	}
}

func TestTravelNoneIgnoresDistanceAndAirfare(t *testing.T) {
	s := pricing.Shoot{
		Type:        pricing.ShootHalfDay,
		Travel:      pricing.TravelNone,
		DistanceKm:  90,
		AirfareCost: 300,
	}
	if got := pricing.ShootCost(s, shootRates(), 5); got != 800 {
		t.Fatalf("cost = %v, want 800", got)
	}
}

func TestExtraEquipmentSummed(t *testing.T) {
	s := pricing.Shoot{
		Type: pricing.ShootHalfDay,
		ExtraEquipment: []pricing.EquipmentItem{
			{Name: "drone", Cost: 275},
			{Name: "slider", Cost: 60},
		},
	}
	if got := pricing.ShootCost(s, shootRates(), 5); got != 1135 {
		t.Fatalf("cost = %v, want 1135", got)
	}
}

func TestAccommodationRequiresBothFields(t *testing.T) {
	s := pricing.Shoot{
		Type:                pricing.ShootHalfDay,
		AccommodationNights: 2,
	}
	if got := pricing.ShootCost(s, shootRates(), 5); got != 800 {
		t.Fatalf("nights without rate should add nothing, got %v", got)
	}

	s.AccommodationPerNight = 180
	if got := pricing.ShootCost(s, shootRates(), 5); got != 1160 {
		t.Fatalf("cost = %v, want 1160", got)
	}
}

func TestShootCostIndependentLineItems(t *testing.T) {
	// The driving contribution is unaffected by everything else on the shoot.
	base := pricing.Shoot{Type: pricing.ShootFullDay, CameraBody: "fx6"}
	withTravel := base
	withTravel.Travel = pricing.TravelDriving
	withTravel.DistanceKm = 50

	delta := pricing.ShootCost(withTravel, shootRates(), 5) - pricing.ShootCost(base, shootRates(), 5)
	if delta != 500 {
		t.Fatalf("travel delta = %v, want 500", delta)
	}
}
