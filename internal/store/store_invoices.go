package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"callsheet/internal/services"
)

// GenerateInvoice snapshots a project's deliverables and shoots into a new
// invoice. Line amounts are copied, not referenced, so later rate or input
// edits never change an issued invoice.
func (s *Store) GenerateInvoice(ctx context.Context, projectID int64, currency string) (*Invoice, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	deliverables, err := s.ListDeliverables(ctx, projectID)
	if err != nil {
		return nil, err
	}
	shoots, err := s.ListShoots(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(deliverables) == 0 && len(shoots) == 0 {
		return nil, services.Wrap(services.ErrValidation, "store", "generate_invoice",
			fmt.Sprintf("project %d has nothing to invoice", projectID), nil)
	}

	type line struct {
		kind        LineKind
		refID       int64
		description string
		amount      float64
	}
	var lines []line
	total := 0.0
	for _, d := range deliverables {
		lines = append(lines, line{LineDeliverable, d.ID, d.Title, d.Cost})
		total += d.Cost
	}
	for _, sh := range shoots {
		desc := sh.Label
		if desc == "" {
			desc = fmt.Sprintf("%s shoot", sh.Type)
		}
		lines = append(lines, line{LineShoot, sh.ID, desc, sh.Cost})
		total += sh.Cost
	}
	total = math.Round(total*100) / 100

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin invoice tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	issuedAt := s.now().UTC()
	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM invoices").Scan(&seq); err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}
	number := fmt.Sprintf("INV-%d-%04d", issuedAt.Year(), seq+1)

	res, err := tx.ExecContext(ctx,
		"INSERT INTO invoices (project_id, number, currency, total, issued_at) VALUES (?, ?, ?, ?, ?)",
		project.ID, number, currency, total, issuedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	invoiceID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, l := range lines {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO invoice_lines (invoice_id, kind, ref_id, description, amount) VALUES (?, ?, ?, ?, ?)",
			invoiceID, l.kind, l.refID, l.description, l.amount); err != nil {
			return nil, fmt.Errorf("insert invoice line: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit invoice: %w", err)
	}
	return s.GetInvoice(ctx, invoiceID)
}

// GetInvoice fetches an invoice with its lines.
func (s *Store) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, project_id, number, currency, total, issued_at FROM invoices WHERE id = ?", id)

	var inv Invoice
	var issued string
	if err := row.Scan(&inv.ID, &inv.ProjectID, &inv.Number, &inv.Currency, &inv.Total, &issued); err != nil {
		if isNoRows(err) {
			return nil, notFound("get_invoice", "invoice", id)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.IssuedAt = parseTimestamp(issued)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, invoice_id, kind, ref_id, description, amount FROM invoice_lines WHERE invoice_id = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("query invoice lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Kind, &l.RefID, &l.Description, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, l)
	}
	return &inv, rows.Err()
}

// ListInvoices returns a project's invoices, newest first, without lines.
func (s *Store) ListInvoices(ctx context.Context, projectID int64) ([]Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, project_id, number, currency, total, issued_at FROM invoices WHERE project_id = ? ORDER BY id DESC",
		projectID)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		var issued string
		if err := rows.Scan(&inv.ID, &inv.ProjectID, &inv.Number, &inv.Currency, &inv.Total, &issued); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.IssuedAt = parseTimestamp(issued)
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
