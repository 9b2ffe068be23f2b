package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notesift/internal/notes"
	"notesift/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	backendURL string
}

func setupCLITestEnv(t *testing.T, fixture testsupport.BackendFixture) *cliTestEnv {
	t.Helper()

	server := testsupport.NewBackendServer(t, fixture)

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`
[paths]
data_dir = %q
log_dir = %q
export_dir = %q

[backend]
base_url = %q
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "exports"),
		server.URL,
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, backendURL: server.URL}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

func fixtureNotes(n int) []notes.CustomerNote {
	batch := make([]notes.CustomerNote, 0, n)
	for i := 1; i <= n; i++ {
		batch = append(batch, notes.CustomerNote{
			NoteID:             fmt.Sprintf("n%d", i),
			CustomerName:       fmt.Sprintf("Customer %d", i),
			ProductManagerName: "Dana Scott",
			Date:               fmt.Sprintf("2025-01-%02d", i),
			Subject:            fmt.Sprintf("Check-in %d", i),
			NoteContent:        "<p>body</p>",
		})
	}
	return batch
}
