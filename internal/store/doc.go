// Package store persists the studio's business records (clients, projects,
// deliverables, shoots, invoices) and the pricing rate table in SQLite.
// Deliverable and shoot costs are always recomputed server-side from their
// inputs and the current rate snapshot when saved; stored costs are never
// trusted from the caller.
package store
