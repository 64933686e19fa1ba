package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seasonfix/internal/repair"
)

func newTestSummary() *repair.Summary {
	return &repair.Summary{
		Shows:     2,
		Seasons:   5,
		Patched:   1,
		Unchanged: 3,
		Skipped:   []repair.Skip{{Path: "a/season.nfo", Reason: "not-found"}},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func missingConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "no-config.toml")
}

func TestLoadRunConfigRejectsBearerConflict(t *testing.T) {
	opts := &rootOptions{
		configPath: missingConfigPath(t),
		bearer:     "a",
		bearerFile: "b",
	}
	if _, err := loadRunConfig(opts); err == nil || !strings.Contains(err.Error(), "only one of") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLoadRunConfigRequiresToken(t *testing.T) {
	t.Setenv("TMDB_BEARER_TOKEN", "")
	opts := &rootOptions{configPath: missingConfigPath(t)}
	if _, err := loadRunConfig(opts); err == nil || !strings.Contains(err.Error(), "bearer token is required") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestLoadRunConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("TMDB_BEARER_TOKEN", "env-token")
	library := t.TempDir()
	opts := &rootOptions{
		configPath:  missingConfigPath(t),
		libraryPath: library,
		bearer:      "flag-token",
	}
	cfg, err := loadRunConfig(opts)
	if err != nil {
		t.Fatalf("loadRunConfig returned error: %v", err)
	}
	if cfg.TMDB.BearerToken != "flag-token" {
		t.Fatalf("expected flag token to win, got %q", cfg.TMDB.BearerToken)
	}
	if cfg.Paths.LibraryDir != library {
		t.Fatalf("expected library override, got %q", cfg.Paths.LibraryDir)
	}
}

func TestLoadRunConfigReadsBearerFile(t *testing.T) {
	t.Setenv("TMDB_BEARER_TOKEN", "")
	tokenPath := filepath.Join(t.TempDir(), "token")
	writeFile(t, tokenPath, "secret\n")

	opts := &rootOptions{
		configPath: missingConfigPath(t),
		bearerFile: tokenPath,
	}
	cfg, err := loadRunConfig(opts)
	if err != nil {
		t.Fatalf("loadRunConfig returned error: %v", err)
	}
	if cfg.TMDB.BearerToken != "secret" {
		t.Fatalf("unexpected token %q", cfg.TMDB.BearerToken)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "seasonfix ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestConfigInitCreatesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	// A second init without --overwrite must refuse.
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestRootCommandEndToEnd(t *testing.T) {
	t.Setenv("TMDB_BEARER_TOKEN", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/authentication":
			_, _ = w.Write([]byte(`{"success":true}`))
		case "/tv/1399/season/1":
			_, _ = w.Write([]byte(`{"id":3624,"name":"Winter Is Coming","season_number":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_code":34}`))
		}
	}))
	t.Cleanup(server.Close)

	library := t.TempDir()
	showDir := filepath.Join(library, "Game of Thrones")
	writeFile(t, filepath.Join(showDir, "tvshow.nfo"),
		"<tvshow>\n  <title>Game of Thrones</title>\n  <uniqueid type=\"tmdb\">1399</uniqueid>\n</tvshow>\n")
	seasonPath := filepath.Join(showDir, "Season 1", "season.nfo")
	writeFile(t, seasonPath,
		"<season>\n  <title>Season 1</title>\n  <seasonnumber>1</seasonnumber>\n</season>\n")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, configPath, "[tmdb]\nbase_url = \""+server.URL+"\"\n")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", configPath, "--library", library, "--bearer", "token"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("root command failed: %v", err)
	}

	content, err := os.ReadFile(seasonPath)
	if err != nil {
		t.Fatalf("read season file: %v", err)
	}
	if !strings.Contains(string(content), "<title>Winter Is Coming</title>") {
		t.Fatalf("season file not patched:\n%s", content)
	}
	if !strings.Contains(out.String(), "Seasons inspected: 1") {
		t.Fatalf("summary missing from output:\n%s", out.String())
	}
}

func TestWriteSummaryPlain(t *testing.T) {
	summary := newTestSummary()
	var out bytes.Buffer
	writeSummary(&out, summary, false, false)

	text := out.String()
	for _, want := range []string{
		"Shows processed: 2",
		"Seasons inspected: 5",
		"Seasons renamed: 1",
		"Already canonical: 3",
		"Skipped (not-found): 1",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestWriteSummaryDryRunLabel(t *testing.T) {
	summary := newTestSummary()
	var out bytes.Buffer
	writeSummary(&out, summary, true, false)
	if !strings.Contains(out.String(), "Seasons to rename (dry run): 1") {
		t.Fatalf("missing dry-run label:\n%s", out.String())
	}
}

func TestWriteSummaryStyledTable(t *testing.T) {
	summary := newTestSummary()
	var out bytes.Buffer
	writeSummary(&out, summary, false, true)
	if !strings.Contains(out.String(), "Result") || !strings.Contains(out.String(), "Count") {
		t.Fatalf("expected table header:\n%s", out.String())
	}
}
