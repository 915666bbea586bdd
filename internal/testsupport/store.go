package testsupport

import (
	"context"
	"testing"

	"callsheet/internal/config"
	"callsheet/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewClient creates a client row for tests using the provided store.
func NewClient(t testing.TB, st *store.Store, name string) *store.Client {
	t.Helper()

	client, err := st.CreateClient(context.Background(), store.Client{Name: name})
	if err != nil {
		t.Fatalf("store.CreateClient: %v", err)
	}
	return client
}

// NewProject creates a project row for tests under the given client.
func NewProject(t testing.TB, st *store.Store, clientID int64, name string) *store.Project {
	t.Helper()

	project, err := st.CreateProject(context.Background(), store.Project{ClientID: clientID, Name: name})
	if err != nil {
		t.Fatalf("store.CreateProject: %v", err)
	}
	return project
}

// SeedRates loads a rate table into the store, failing the test on error.
func SeedRates(t testing.TB, st *store.Store, rates map[string]float64) {
	t.Helper()

	for key, value := range rates {
		if err := st.SetRate(context.Background(), key, value); err != nil {
			t.Fatalf("store.SetRate(%s): %v", key, err)
		}
	}
}
