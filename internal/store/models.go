package store

import (
	"time"

	"callsheet/internal/pricing"
)

// Client is a studio customer.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectStatus tracks a project through its commercial lifecycle.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectDelivered ProjectStatus = "delivered"
	ProjectArchived  ProjectStatus = "archived"
)

// Project groups deliverables and shoots for one client engagement.
type Project struct {
	ID            int64         `json:"id"`
	ClientID      int64         `json:"clientId"`
	Name          string        `json:"name"`
	Status        ProjectStatus `json:"status"`
	DriveFolderID string        `json:"driveFolderId,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Deliverable is a priced video output. Bracket and Cost are derived columns
// filled in by the store on save.
type Deliverable struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	Title     string `json:"title"`

	VideoLengthSeconds int                   `json:"videoLengthSeconds"`
	EditType           pricing.EditType      `json:"editType"`
	ColourGrading      pricing.ColourGrade   `json:"colourGrading"`
	Subtitles          pricing.SubtitleLevel `json:"subtitles"`
	AdditionalFormats  int                   `json:"additionalFormats"`
	CustomMusic        bool                  `json:"customMusic"`
	CustomMusicCost    float64               `json:"customMusicCost,omitempty"`
	CustomGraphics     bool                  `json:"customGraphics"`
	CustomGraphicsCost float64               `json:"customGraphicsCost,omitempty"`
	Rush               pricing.RushType      `json:"rush"`

	Bracket pricing.Bracket `json:"bracket"`
	Cost    float64         `json:"cost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PricingInput converts the stored row into the pricing engine's input.
func (d Deliverable) PricingInput() pricing.Deliverable {
	return pricing.Deliverable{
		VideoLengthSeconds: d.VideoLengthSeconds,
		EditType:           d.EditType,
		ColourGrading:      d.ColourGrading,
		Subtitles:          d.Subtitles,
		AdditionalFormats:  d.AdditionalFormats,
		CustomMusic:        d.CustomMusic,
		CustomMusicCost:    d.CustomMusicCost,
		CustomGraphics:     d.CustomGraphics,
		CustomGraphicsCost: d.CustomGraphicsCost,
		Rush:               d.Rush,
	}
}

// Shoot is a filming day attached to a project. Cost is derived on save.
type Shoot struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"projectId"`
	Label     string `json:"label"`

	Type       pricing.ShootType `json:"type"`
	CameraBody string            `json:"cameraBody,omitempty"`

	SecondShooter pricing.AddOn `json:"secondShooter"`
	SoundKit      pricing.AddOn `json:"soundKit"`
	Lighting      pricing.AddOn `json:"lighting"`
	Gimbal        pricing.AddOn `json:"gimbal"`

	ExtraEquipment []pricing.EquipmentItem `json:"extraEquipment,omitempty"`

	Travel      pricing.TravelMethod `json:"travel"`
	Location    string               `json:"location,omitempty"`
	DistanceKm  float64              `json:"distanceKm,omitempty"`
	AirfareCost float64              `json:"airfareCost,omitempty"`

	AccommodationNights   int     `json:"accommodationNights,omitempty"`
	AccommodationPerNight float64 `json:"accommodationPerNight,omitempty"`

	Cost float64 `json:"cost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PricingInput converts the stored row into the pricing engine's input.
func (s Shoot) PricingInput() pricing.Shoot {
	return pricing.Shoot{
		Type:                  s.Type,
		CameraBody:            s.CameraBody,
		SecondShooter:         s.SecondShooter,
		SoundKit:              s.SoundKit,
		Lighting:              s.Lighting,
		Gimbal:                s.Gimbal,
		ExtraEquipment:        s.ExtraEquipment,
		Travel:                s.Travel,
		Location:              s.Location,
		DistanceKm:            s.DistanceKm,
		AirfareCost:           s.AirfareCost,
		AccommodationNights:   s.AccommodationNights,
		AccommodationPerNight: s.AccommodationPerNight,
	}
}

// LineKind says what an invoice line bills for.
type LineKind string

const (
	LineDeliverable LineKind = "deliverable"
	LineShoot       LineKind = "shoot"
)

// InvoiceLine is one billed item on an invoice.
type InvoiceLine struct {
	ID          int64    `json:"id"`
	InvoiceID   int64    `json:"invoiceId"`
	Kind        LineKind `json:"kind"`
	RefID       int64    `json:"refId"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
}

// Invoice is a snapshot of a project's billable items at generation time.
// Lines copy their amounts so later rate changes never alter an issued
// invoice.
type Invoice struct {
	ID        int64         `json:"id"`
	ProjectID int64         `json:"projectId"`
	Number    string        `json:"number"`
	Currency  string        `json:"currency"`
	Total     float64       `json:"total"`
	IssuedAt  time.Time     `json:"issuedAt"`
	Lines     []InvoiceLine `json:"lines,omitempty"`
}
