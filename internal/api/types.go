package api

import "callsheet/internal/pricing"

// Quote is the result of a pricing calculation that was not persisted.
type Quote struct {
	Cost     float64         `json:"cost"`
	Bracket  pricing.Bracket `json:"bracket,omitempty"`
	Currency string          `json:"currency"`
}

// DeliverableInput is the transport form of a deliverable pricing request.
// Loose numeric fields follow the form conventions: missing values are 0.
type DeliverableInput struct {
	VideoLengthSeconds int     `json:"videoLengthSeconds"`
	EditType           string  `json:"editType"`
	ColourGrading      string  `json:"colourGrading"`
	Subtitles          string  `json:"subtitles"`
	AdditionalFormats  int     `json:"additionalFormats"`
	CustomMusic        bool    `json:"customMusic"`
	CustomMusicCost    string  `json:"customMusicCost"`
	CustomGraphics     bool    `json:"customGraphics"`
	CustomGraphicsCost string  `json:"customGraphicsCost"`
	Rush               string  `json:"rush"`
}

// ToPricing validates nothing; unknown enum values simply price their
// components at zero, matching the engine's missing-rate behavior.
func (in DeliverableInput) ToPricing() pricing.Deliverable {
	return pricing.Deliverable{
		VideoLengthSeconds: in.VideoLengthSeconds,
		EditType:           pricing.EditType(in.EditType),
		ColourGrading:      pricing.ColourGrade(in.ColourGrading),
		Subtitles:          pricing.SubtitleLevel(in.Subtitles),
		AdditionalFormats:  in.AdditionalFormats,
		CustomMusic:        in.CustomMusic,
		CustomMusicCost:    pricing.Amount(in.CustomMusicCost),
		CustomGraphics:     in.CustomGraphics,
		CustomGraphicsCost: pricing.Amount(in.CustomGraphicsCost),
		Rush:               pricing.RushType(in.Rush),
	}
}

// AddOnInput is the transport form of a day-priced add-on.
type AddOnInput struct {
	Enabled bool   `json:"enabled"`
	Day     string `json:"day"`
}

// EquipmentInput is a free-form extra equipment line; Cost accepts loose
// numeric strings, invalid input counts as 0.
type EquipmentInput struct {
	Name string `json:"name"`
	Cost string `json:"cost"`
}

// ShootInput is the transport form of a shoot pricing request.
type ShootInput struct {
	Type       string `json:"type"`
	CameraBody string `json:"cameraBody"`

	SecondShooter AddOnInput `json:"secondShooter"`
	SoundKit      AddOnInput `json:"soundKit"`
	Lighting      AddOnInput `json:"lighting"`
	Gimbal        AddOnInput `json:"gimbal"`

	ExtraEquipment []EquipmentInput `json:"extraEquipment"`

	Travel      string  `json:"travel"`
	Location    string  `json:"location"`
	DistanceKm  float64 `json:"distanceKm"`
	AirfareCost string  `json:"airfareCost"`

	AccommodationNights   int    `json:"accommodationNights"`
	AccommodationPerNight string `json:"accommodationPerNight"`
}

// ToPricing converts the transport form to the engine's input.
func (in ShootInput) ToPricing() pricing.Shoot {
	addOn := func(a AddOnInput) pricing.AddOn {
		return pricing.AddOn{Enabled: a.Enabled, Day: pricing.DayKind(a.Day)}
	}
	extras := make([]pricing.EquipmentItem, 0, len(in.ExtraEquipment))
	for _, item := range in.ExtraEquipment {
		extras = append(extras, pricing.EquipmentItem{Name: item.Name, Cost: pricing.Amount(item.Cost)})
	}
	return pricing.Shoot{
		Type:                  pricing.ShootType(in.Type),
		CameraBody:            in.CameraBody,
		SecondShooter:         addOn(in.SecondShooter),
		SoundKit:              addOn(in.SoundKit),
		Lighting:              addOn(in.Lighting),
		Gimbal:                addOn(in.Gimbal),
		ExtraEquipment:        extras,
		Travel:                pricing.TravelMethod(in.Travel),
		Location:              in.Location,
		DistanceKm:            in.DistanceKm,
		AirfareCost:           pricing.Amount(in.AirfareCost),
		AccommodationNights:   in.AccommodationNights,
		AccommodationPerNight: pricing.Amount(in.AccommodationPerNight),
	}
}

// DaemonStatus summarizes the running daemon for status commands and the
// HTTP health endpoint.
type DaemonStatus struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	DatabasePath  string `json:"databasePath"`
	LockPath      string `json:"lockPath"`
	DriveEnabled  bool   `json:"driveEnabled"`
	ActiveJobs    int    `json:"activeJobs"`
	QueuedJobs    int    `json:"queuedJobs"`
	BlockedJobs   int    `json:"blockedJobs"`
	FinishedJobs  int    `json:"finishedJobs"`
	ClientCount   int    `json:"clientCount"`
	ProjectCount  int    `json:"projectCount"`
	RateCount     int    `json:"rateCount"`
}
