package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/export"
)

// isolate points HOME and the working directory at temp dirs and clears
// the variables config.Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	for _, key := range []string{
		"ZUBA_SOURCE", "SUPABASE_URL", "SUPABASE_ANON_KEY",
		"NEXT_PUBLIC_SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_ANON_KEY",
		"ZUBA_WEB_DIR", "DATABASE_URL", "ZUBA_DB_PATH", "ZUBA_EXPORT_DIR",
		"ZUBA_REFRESH_INTERVAL", "ZUBA_FETCH_TIMEOUT", "ZUBA_NOTIFICATIONS",
		"ZUBA_LOG_FILE", "ZUBA_LOG_LEVEL", "ZUBA_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "zuba ") {
		t.Errorf("output = %q", out)
	}
}

func TestExportCommand_Demo(t *testing.T) {
	isolate(t)
	outDir := t.TempDir()

	out, err := execute(t, "export", "--demo", "--out", outDir, "--client", "1", "--from", "2025-06-01")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "Exported 2 records") {
		t.Errorf("output = %q", out)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "zuba-broadband-demo-*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one demo export, found %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Errorf("csv has %d lines, want header plus 2 rows", len(lines))
	}
}

func TestExportCommand_NoMatches(t *testing.T) {
	isolate(t)
	outDir := t.TempDir()

	out, err := execute(t, "export", "--demo", "--out", outDir, "--min", "10000")
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "wrote header only") {
		t.Errorf("output = %q", out)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "zuba-broadband-demo-*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one header-only export, found %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != export.Header {
		t.Errorf("csv = %q, want the header line only", string(data))
	}
}

func TestExportCommand_InvalidFilter(t *testing.T) {
	isolate(t)

	_, err := execute(t, "export", "--demo", "--from", "June")
	if err == nil || !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Errorf("error = %v, want a date validation error", err)
	}
}

func TestSeedCommand(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "usage.db")

	out, err := execute(t, "seed", "--db", dbPath)
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if !strings.Contains(out, "Seeded 9 usage records") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"demo", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"export", "seed", "version"} {
		if !strings.Contains(strings.Join(names, " "), want) {
			t.Errorf("missing %q subcommand in %v", want, names)
		}
	}
}
