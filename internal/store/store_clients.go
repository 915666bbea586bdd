package store

import (
	"context"
	"fmt"

	"callsheet/internal/services"
)

const clientColumns = "id, name, company, email, phone, notes, created_at, updated_at"

// CreateClient inserts a new client and returns the stored row.
func (s *Store) CreateClient(ctx context.Context, c Client) (*Client, error) {
	if c.Name == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "create_client", "client name is required", nil)
	}
	ts := s.timestamp()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (name, company, email, phone, notes, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Company, c.Email, c.Phone, c.Notes, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetClient(ctx, id)
}

// GetClient fetches one client by ID.
func (s *Store) GetClient(ctx context.Context, id int64) (*Client, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ?", id)
	c, err := scanClient(row)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("get_client", "client", id)
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListClients returns all clients ordered by name.
func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+clientColumns+" FROM clients ORDER BY name COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// UpdateClient replaces a client's mutable fields.
func (s *Store) UpdateClient(ctx context.Context, c Client) (*Client, error) {
	if c.Name == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "update_client", "client name is required", nil)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, company = ?, email = ?, phone = ?, notes = ?, updated_at = ?
         WHERE id = ?`,
		c.Name, c.Company, c.Email, c.Phone, c.Notes, s.timestamp(), c.ID)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, notFound("update_client", "client", c.ID)
	}
	return s.GetClient(ctx, c.ID)
}

// DeleteClient removes a client and, via cascade, its projects.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("delete_client", "client", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*Client, error) {
	var c Client
	var created, updated string
	if err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Notes, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt = parseTimestamp(created)
	c.UpdatedAt = parseTimestamp(updated)
	return &c, nil
}
