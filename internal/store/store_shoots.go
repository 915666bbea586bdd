package store

import (
	"context"
	"encoding/json"
	"fmt"

	"callsheet/internal/pricing"
	"callsheet/internal/services"
)

const shootColumns = `id, project_id, label, shoot_type, camera_body,
    second_shooter_enabled, second_shooter_day, sound_kit_enabled, sound_kit_day,
    lighting_enabled, lighting_day, gimbal_enabled, gimbal_day,
    extra_equipment_json, travel, location, distance_km, airfare_cost,
    accommodation_nights, accommodation_per_night, cost, created_at, updated_at`

func validateShoot(sh Shoot) error {
	fail := func(msg string) error {
		return services.Wrap(services.ErrValidation, "store", "save_shoot", msg, nil)
	}
	switch sh.Type {
	case pricing.ShootHalfDay, pricing.ShootFullDay:
	default:
		return fail(fmt.Sprintf("unknown shoot type %q", sh.Type))
	}
	switch sh.Travel {
	case pricing.TravelNone, pricing.TravelDriving, pricing.TravelFlying, "":
	default:
		return fail(fmt.Sprintf("unknown travel method %q", sh.Travel))
	}
	for _, addOn := range []pricing.AddOn{sh.SecondShooter, sh.SoundKit, sh.Lighting, sh.Gimbal} {
		switch addOn.Day {
		case "", pricing.DayHalf, pricing.DayFull:
		default:
			return fail(fmt.Sprintf("unknown add-on day kind %q", addOn.Day))
		}
	}
	if sh.DistanceKm < 0 {
		return fail("distance cannot be negative")
	}
	if sh.AccommodationNights < 0 {
		return fail("accommodation nights cannot be negative")
	}
	return nil
}

// SaveShoot creates the shoot (ID zero) or fully replaces it, recomputing
// the cost from the inputs, the current rate snapshot, and the configured
// per-kilometre travel rate.
func (s *Store) SaveShoot(ctx context.Context, sh Shoot, perKmRate float64) (*Shoot, error) {
	if err := validateShoot(sh); err != nil {
		return nil, err
	}
	if _, err := s.GetProject(ctx, sh.ProjectID); err != nil {
		return nil, err
	}
	if sh.Travel == "" {
		sh.Travel = pricing.TravelNone
	}

	rates, err := s.RatesSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	sh.Cost = pricing.ShootCost(sh.PricingInput(), rates, perKmRate)

	extraJSON, err := json.Marshal(sh.ExtraEquipment)
	if err != nil {
		return nil, fmt.Errorf("marshal extra equipment: %w", err)
	}

	ts := s.timestamp()
	if sh.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO shoots (
                project_id, label, shoot_type, camera_body,
                second_shooter_enabled, second_shooter_day, sound_kit_enabled, sound_kit_day,
                lighting_enabled, lighting_day, gimbal_enabled, gimbal_day,
                extra_equipment_json, travel, location, distance_km, airfare_cost,
                accommodation_nights, accommodation_per_night, cost, created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sh.ProjectID, sh.Label, sh.Type, sh.CameraBody,
			sh.SecondShooter.Enabled, string(sh.SecondShooter.Day),
			sh.SoundKit.Enabled, string(sh.SoundKit.Day),
			sh.Lighting.Enabled, string(sh.Lighting.Day),
			sh.Gimbal.Enabled, string(sh.Gimbal.Day),
			string(extraJSON), sh.Travel, sh.Location, sh.DistanceKm, sh.AirfareCost,
			sh.AccommodationNights, sh.AccommodationPerNight, sh.Cost, ts, ts)
		if err != nil {
			return nil, fmt.Errorf("insert shoot: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		return s.GetShoot(ctx, id)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE shoots SET
            project_id = ?, label = ?, shoot_type = ?, camera_body = ?,
            second_shooter_enabled = ?, second_shooter_day = ?,
            sound_kit_enabled = ?, sound_kit_day = ?,
            lighting_enabled = ?, lighting_day = ?,
            gimbal_enabled = ?, gimbal_day = ?,
            extra_equipment_json = ?, travel = ?, location = ?, distance_km = ?,
            airfare_cost = ?, accommodation_nights = ?, accommodation_per_night = ?,
            cost = ?, updated_at = ?
         WHERE id = ?`,
		sh.ProjectID, sh.Label, sh.Type, sh.CameraBody,
		sh.SecondShooter.Enabled, string(sh.SecondShooter.Day),
		sh.SoundKit.Enabled, string(sh.SoundKit.Day),
		sh.Lighting.Enabled, string(sh.Lighting.Day),
		sh.Gimbal.Enabled, string(sh.Gimbal.Day),
		string(extraJSON), sh.Travel, sh.Location, sh.DistanceKm, sh.AirfareCost,
		sh.AccommodationNights, sh.AccommodationPerNight, sh.Cost, ts, sh.ID)
	if err != nil {
		return nil, fmt.Errorf("update shoot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, notFound("save_shoot", "shoot", sh.ID)
	}
	return s.GetShoot(ctx, sh.ID)
}

// GetShoot fetches one shoot by ID.
func (s *Store) GetShoot(ctx context.Context, id int64) (*Shoot, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+shootColumns+" FROM shoots WHERE id = ?", id)
	sh, err := scanShoot(row)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("get_shoot", "shoot", id)
		}
		return nil, fmt.Errorf("get shoot: %w", err)
	}
	return sh, nil
}

// ListShoots returns a project's shoots in creation order. The detail page
// treats the first entry as "the" shoot; the shoots page shows the list.
func (s *Store) ListShoots(ctx context.Context, projectID int64) ([]Shoot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+shootColumns+" FROM shoots WHERE project_id = ? ORDER BY id", projectID)
	if err != nil {
		return nil, fmt.Errorf("query shoots: %w", err)
	}
	defer rows.Close()

	var shoots []Shoot
	for rows.Next() {
		sh, err := scanShoot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shoot: %w", err)
		}
		shoots = append(shoots, *sh)
	}
	return shoots, rows.Err()
}

// DeleteShoot removes one shoot.
func (s *Store) DeleteShoot(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM shoots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete shoot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("delete_shoot", "shoot", id)
	}
	return nil
}

func scanShoot(row rowScanner) (*Shoot, error) {
	var sh Shoot
	var created, updated, extraJSON string
	var secondDay, soundDay, lightingDay, gimbalDay string
	if err := row.Scan(
		&sh.ID, &sh.ProjectID, &sh.Label, &sh.Type, &sh.CameraBody,
		&sh.SecondShooter.Enabled, &secondDay,
		&sh.SoundKit.Enabled, &soundDay,
		&sh.Lighting.Enabled, &lightingDay,
		&sh.Gimbal.Enabled, &gimbalDay,
		&extraJSON, &sh.Travel, &sh.Location, &sh.DistanceKm, &sh.AirfareCost,
		&sh.AccommodationNights, &sh.AccommodationPerNight, &sh.Cost,
		&created, &updated,
	); err != nil {
		return nil, err
	}
	sh.SecondShooter.Day = pricing.DayKind(secondDay)
	sh.SoundKit.Day = pricing.DayKind(soundDay)
	sh.Lighting.Day = pricing.DayKind(lightingDay)
	sh.Gimbal.Day = pricing.DayKind(gimbalDay)
	if err := json.Unmarshal([]byte(extraJSON), &sh.ExtraEquipment); err != nil {
		return nil, fmt.Errorf("unmarshal extra equipment: %w", err)
	}
	sh.CreatedAt = parseTimestamp(created)
	sh.UpdatedAt = parseTimestamp(updated)
	return &sh, nil
}
