package store

import (
	"context"
	"fmt"

	"callsheet/internal/services"
)

const projectColumns = "id, client_id, name, status, drive_folder_id, notes, created_at, updated_at"

func validProjectStatus(status ProjectStatus) bool {
	switch status {
	case ProjectActive, ProjectDelivered, ProjectArchived:
		return true
	}
	return false
}

// CreateProject inserts a new project under an existing client.
func (s *Store) CreateProject(ctx context.Context, p Project) (*Project, error) {
	if p.Name == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "create_project", "project name is required", nil)
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	if !validProjectStatus(p.Status) {
		return nil, services.Wrap(services.ErrValidation, "store", "create_project",
			fmt.Sprintf("unknown project status %q", p.Status), nil)
	}
	if _, err := s.GetClient(ctx, p.ClientID); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (client_id, name, status, drive_folder_id, notes, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ClientID, p.Name, p.Status, p.DriveFolderID, p.Notes, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetProject(ctx, id)
}

// GetProject fetches one project by ID.
func (s *Store) GetProject(ctx context.Context, id int64) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("get_project", "project", id)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListProjects returns projects, optionally filtered to one client
// (clientID 0 means all), newest first.
func (s *Store) ListProjects(ctx context.Context, clientID int64) ([]Project, error) {
	query := "SELECT " + projectColumns + " FROM projects"
	args := []any{}
	if clientID != 0 {
		query += " WHERE client_id = ?"
		args = append(args, clientID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// UpdateProject replaces a project's mutable fields.
func (s *Store) UpdateProject(ctx context.Context, p Project) (*Project, error) {
	if p.Name == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "update_project", "project name is required", nil)
	}
	if !validProjectStatus(p.Status) {
		return nil, services.Wrap(services.ErrValidation, "store", "update_project",
			fmt.Sprintf("unknown project status %q", p.Status), nil)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, status = ?, drive_folder_id = ?, notes = ?, updated_at = ?
         WHERE id = ?`,
		p.Name, p.Status, p.DriveFolderID, p.Notes, s.timestamp(), p.ID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, notFound("update_project", "project", p.ID)
	}
	return s.GetProject(ctx, p.ID)
}

// DeleteProject removes a project and its dependent rows.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("delete_project", "project", id)
	}
	return nil
}

func scanProject(row rowScanner) (*Project, error) {
	var p Project
	var created, updated string
	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Status, &p.DriveFolderID, &p.Notes, &created, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTimestamp(created)
	p.UpdatedAt = parseTimestamp(updated)
	return &p, nil
}
