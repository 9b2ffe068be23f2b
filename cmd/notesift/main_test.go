package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notesift/internal/testsupport"
)

func TestStatusWithoutSession(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{})

	out, _, err := runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "No active session")
}

func TestFullWizardFlow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{
		Notes:       fixtureNotes(3),
		RelevantIDs: map[string]bool{"n1": true, "n3": true},
	})

	out, _, err := runCLI(t, env, "fetch",
		"--name", "Dana Scott",
		"--from", "2025-01", "--to", "2025-02",
		"--project", "analytics revamp")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "Fetched 3 notes, 2 relevant")

	out, _, err = runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Review")
	requireContains(t, out, "3 fetched, 2 relevant, 2 selected")

	out, _, err = runCLI(t, env, "review")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	requireContains(t, out, "Customer 1")
	requireContains(t, out, "2 of 2 notes selected")

	out, _, err = runCLI(t, env, "review", "toggle", "n3")
	if err != nil {
		t.Fatalf("review toggle: %v", err)
	}
	requireContains(t, out, "1 of 2 notes selected")

	out, _, err = runCLI(t, env, "ask", "Did they mention pricing?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	requireContains(t, out, "Answered 1 questions across 1 notes")

	out, _, err = runCLI(t, env, "results")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	requireContains(t, out, "Did they mention pricing?")
	requireContains(t, out, "1 (100.0%)")

	target := filepath.Join(env.baseDir, "out.csv")
	out, _, err = runCLI(t, env, "export", "csv", "-o", target)
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	requireContains(t, out, "Wrote "+target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header + 1 result", len(lines))
	}
}

func TestFetchWithNoMatchesKeepsInputStage(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{})

	out, _, err := runCLI(t, env, "fetch",
		"--name", "Dana Scott",
		"--from", "2025-01", "--to", "2025-02",
		"--project", "analytics revamp")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "No notes found")

	out, _, err = runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Input")
}

func TestFetchRejectsIncompleteQuery(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{})

	_, _, err := runCLI(t, env, "fetch", "--name", "Dana Scott")
	if err == nil {
		t.Fatal("expected validation error for missing date range")
	}
}

func TestAskWithoutSelectionFails(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{})

	_, _, err := runCLI(t, env, "ask", "Did they mention pricing?")
	if err == nil || !strings.Contains(err.Error(), "no active session") {
		t.Fatalf("expected missing-session error, got %v", err)
	}
}

func TestBackCommand(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{Notes: fixtureNotes(1)})

	if _, _, err := runCLI(t, env, "fetch",
		"--name", "Dana Scott",
		"--from", "2025-01", "--to", "2025-02",
		"--project", "analytics revamp"); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	out, _, err := runCLI(t, env, "back")
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	requireContains(t, out, "Now at Input")

	// Data survived, so moving forward again is allowed.
	out, _, err = runCLI(t, env, "back", "review")
	if err != nil {
		t.Fatalf("back review: %v", err)
	}
	requireContains(t, out, "Now at Review")
}

func TestPMNamesSorted(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{
		PMNames: []string{"zoe", "Émile", "Adam"},
	})

	out, _, err := runCLI(t, env, "pm-names")
	if err != nil {
		t.Fatalf("pm-names: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %v", lines)
	}
	if lines[0] != "Adam" || lines[1] != "Émile" || lines[2] != "zoe" {
		t.Fatalf("collated order wrong: %v", lines)
	}
}

func TestExportTSVDefaultsToStdout(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{Notes: fixtureNotes(1)})

	if _, _, err := runCLI(t, env, "fetch",
		"--name", "Dana Scott",
		"--from", "2025-01", "--to", "2025-02",
		"--project", "analytics revamp"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, _, err := runCLI(t, env, "ask", "Pricing?"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	out, _, err := runCLI(t, env, "export", "tsv")
	if err != nil {
		t.Fatalf("export tsv: %v", err)
	}
	if !strings.Contains(out, "\t") {
		t.Fatalf("expected tab-separated output on stdout: %q", out)
	}
}

func TestResetKeepsData(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.BackendFixture{Notes: fixtureNotes(2)})

	if _, _, err := runCLI(t, env, "fetch",
		"--name", "Dana Scott",
		"--from", "2025-01", "--to", "2025-02",
		"--project", "analytics revamp"); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	out, _, err := runCLI(t, env, "reset")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	requireContains(t, out, "input stage")

	out, _, err = runCLI(t, env, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "2 fetched")
}
