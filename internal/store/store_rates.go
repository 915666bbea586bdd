package store

import (
	"context"
	"fmt"

	"callsheet/internal/pricing"
	"callsheet/internal/services"
)

// RatesSnapshot loads the full rate table. Pricing always runs against a
// snapshot, never the live table, so a calculation sees a consistent set.
func (s *Store) RatesSnapshot(ctx context.Context) (pricing.Rates, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM rates")
	if err != nil {
		return nil, fmt.Errorf("query rates: %w", err)
	}
	defer rows.Close()

	rates := pricing.Rates{}
	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rates[key] = value
	}
	return rates, rows.Err()
}

// SetRate inserts or replaces one rate entry.
func (s *Store) SetRate(ctx context.Context, key string, value float64) error {
	if key == "" {
		return services.Wrap(services.ErrValidation, "store", "set_rate", "rate key is required", nil)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO rates (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("upsert rate %s: %w", key, err)
	}
	return nil
}

// DeleteRate removes a rate entry; deleting an absent key is a no-op.
func (s *Store) DeleteRate(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM rates WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete rate %s: %w", key, err)
	}
	return nil
}

// SeedRates inserts entries only for keys not already present, used to load
// a starter rate card without clobbering operator edits.
func (s *Store) SeedRates(ctx context.Context, rates pricing.Rates) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range rates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO rates (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING",
			key, value); err != nil {
			return fmt.Errorf("seed rate %s: %w", key, err)
		}
	}
	return tx.Commit()
}
