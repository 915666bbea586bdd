package store

import (
	"context"
	"fmt"

	"callsheet/internal/pricing"
	"callsheet/internal/services"
)

const deliverableColumns = `id, project_id, title, video_length_seconds, edit_type, colour_grading,
    subtitles, additional_formats, custom_music, custom_music_cost, custom_graphics,
    custom_graphics_cost, rush, bracket, cost, created_at, updated_at`

func validateDeliverable(d Deliverable) error {
	fail := func(msg string) error {
		return services.Wrap(services.ErrValidation, "store", "save_deliverable", msg, nil)
	}
	if d.Title == "" {
		return fail("deliverable title is required")
	}
	if d.VideoLengthSeconds < 0 {
		return fail("video length cannot be negative")
	}
	if d.AdditionalFormats < 0 {
		return fail("additional formats cannot be negative")
	}
	switch d.EditType {
	case pricing.EditBasic, pricing.EditAdvanced, pricing.EditColourOnly:
	default:
		return fail(fmt.Sprintf("unknown edit type %q", d.EditType))
	}
	switch d.ColourGrading {
	case pricing.ColourNone, pricing.ColourStandard, pricing.ColourAdvanced:
	default:
		return fail(fmt.Sprintf("unknown colour grading %q", d.ColourGrading))
	}
	switch d.Subtitles {
	case pricing.SubtitlesNone, pricing.SubtitlesBasic, pricing.SubtitlesStyled:
	default:
		return fail(fmt.Sprintf("unknown subtitle level %q", d.Subtitles))
	}
	switch d.Rush {
	case pricing.RushNone, pricing.RushStandard, pricing.RushEmergency:
	default:
		return fail(fmt.Sprintf("unknown rush type %q", d.Rush))
	}
	return nil
}

// SaveDeliverable creates the deliverable (ID zero) or fully replaces it.
// Bracket and cost are recomputed here from the inputs and the current rate
// snapshot; whatever the caller set on those fields is ignored.
func (s *Store) SaveDeliverable(ctx context.Context, d Deliverable) (*Deliverable, error) {
	if err := validateDeliverable(d); err != nil {
		return nil, err
	}
	if _, err := s.GetProject(ctx, d.ProjectID); err != nil {
		return nil, err
	}

	rates, err := s.RatesSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	input := d.PricingInput()
	d.Bracket = input.Bracket()
	d.Cost = pricing.DeliverableCost(input, rates)

	ts := s.timestamp()
	if d.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO deliverables (
                project_id, title, video_length_seconds, edit_type, colour_grading,
                subtitles, additional_formats, custom_music, custom_music_cost,
                custom_graphics, custom_graphics_cost, rush, bracket, cost,
                created_at, updated_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ProjectID, d.Title, d.VideoLengthSeconds, d.EditType, d.ColourGrading,
			d.Subtitles, d.AdditionalFormats, d.CustomMusic, d.CustomMusicCost,
			d.CustomGraphics, d.CustomGraphicsCost, d.Rush, d.Bracket, d.Cost, ts, ts)
		if err != nil {
			return nil, fmt.Errorf("insert deliverable: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		return s.GetDeliverable(ctx, id)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE deliverables SET
            project_id = ?, title = ?, video_length_seconds = ?, edit_type = ?,
            colour_grading = ?, subtitles = ?, additional_formats = ?,
            custom_music = ?, custom_music_cost = ?, custom_graphics = ?,
            custom_graphics_cost = ?, rush = ?, bracket = ?, cost = ?, updated_at = ?
         WHERE id = ?`,
		d.ProjectID, d.Title, d.VideoLengthSeconds, d.EditType, d.ColourGrading,
		d.Subtitles, d.AdditionalFormats, d.CustomMusic, d.CustomMusicCost,
		d.CustomGraphics, d.CustomGraphicsCost, d.Rush, d.Bracket, d.Cost, ts, d.ID)
	if err != nil {
		return nil, fmt.Errorf("update deliverable: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, notFound("save_deliverable", "deliverable", d.ID)
	}
	return s.GetDeliverable(ctx, d.ID)
}

// GetDeliverable fetches one deliverable by ID.
func (s *Store) GetDeliverable(ctx context.Context, id int64) (*Deliverable, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+deliverableColumns+" FROM deliverables WHERE id = ?", id)
	d, err := scanDeliverable(row)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("get_deliverable", "deliverable", id)
		}
		return nil, fmt.Errorf("get deliverable: %w", err)
	}
	return d, nil
}

// ListDeliverables returns a project's deliverables in creation order.
func (s *Store) ListDeliverables(ctx context.Context, projectID int64) ([]Deliverable, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+deliverableColumns+" FROM deliverables WHERE project_id = ? ORDER BY id", projectID)
	if err != nil {
		return nil, fmt.Errorf("query deliverables: %w", err)
	}
	defer rows.Close()

	var deliverables []Deliverable
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deliverable: %w", err)
		}
		deliverables = append(deliverables, *d)
	}
	return deliverables, rows.Err()
}

// DeleteDeliverable removes one deliverable.
func (s *Store) DeleteDeliverable(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM deliverables WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete deliverable: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("delete_deliverable", "deliverable", id)
	}
	return nil
}

// RepriceDeliverables recomputes every deliverable cost for a project
// against the current rate table, used after a rate-card change.
func (s *Store) RepriceDeliverables(ctx context.Context, projectID int64) ([]Deliverable, error) {
	deliverables, err := s.ListDeliverables(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]Deliverable, 0, len(deliverables))
	for _, d := range deliverables {
		saved, err := s.SaveDeliverable(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, *saved)
	}
	return out, nil
}

func scanDeliverable(row rowScanner) (*Deliverable, error) {
	var d Deliverable
	var created, updated string
	if err := row.Scan(
		&d.ID, &d.ProjectID, &d.Title, &d.VideoLengthSeconds, &d.EditType, &d.ColourGrading,
		&d.Subtitles, &d.AdditionalFormats, &d.CustomMusic, &d.CustomMusicCost,
		&d.CustomGraphics, &d.CustomGraphicsCost, &d.Rush, &d.Bracket, &d.Cost,
		&created, &updated,
	); err != nil {
		return nil, err
	}
	d.CreatedAt = parseTimestamp(created)
	d.UpdatedAt = parseTimestamp(updated)
	return &d, nil
}
