package main

import (
	"testing"
)

func TestRatesAndPricingCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"rates", "set", "edit_basic_60", "1000"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("rates set: %v", err)
	}
	if _, _, err := runCLI(t, []string{"rates", "set", "colour_standard_60", "200"}, env.socketPath, env.configPath); err != nil {
		t.Fatalf("rates set: %v", err)
	}

	out, _, err := runCLI(t, []string{"rates", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("rates list: %v", err)
	}
	requireContains(t, out, "edit_basic_60")
	requireContains(t, out, "1000")

	out, _, err = runCLI(t, []string{
		"price", "deliverable", "--length", "55", "--edit", "basic", "--colour", "standard",
	}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("price deliverable: %v", err)
	}
	requireContains(t, out, "Bracket: 60")

	out, _, err = runCLI(t, []string{"rates", "delete", "colour_standard_60"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("rates delete: %v", err)
	}
	requireContains(t, out, "Deleted colour_standard_60")
}

func TestClientProjectWorkflow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"clients", "add", "Acme Films", "--email", "hello@acme.test"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("clients add: %v", err)
	}
	requireContains(t, out, "Created client 1")

	out, _, err = runCLI(t, []string{"projects", "add", "Launch Video", "--client", "1"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects add: %v", err)
	}
	requireContains(t, out, "Created project 1")

	out, _, err = runCLI(t, []string{"projects", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects list: %v", err)
	}
	requireContains(t, out, "Launch Video")
	requireContains(t, out, "active")

	out, _, err = runCLI(t, []string{"projects", "set-status", "1", "delivered"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("projects set-status: %v", err)
	}
	requireContains(t, out, "Project 1 is now delivered")

	out, _, err = runCLI(t, []string{"clients", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("clients list: %v", err)
	}
	requireContains(t, out, "Acme Films")
}

func TestStatusCommandReportsRunning(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Running")
	requireContains(t, out, "Queued uploads")
}

func TestUploadCommandsRejectMissingJob(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"uploads", "pause", "deadbeef"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected error for unknown job")
	}
}
