package version

import (
	"runtime/debug"
	"strings"
	"sync"
	"testing"
)

// reset restores the package globals after a test mutates them.
func reset(t *testing.T) {
	t.Helper()
	v, c, d, rbi := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = v, c, d, rbi
		once = sync.Once{}
	})
	Version, Commit, Date = "", "", ""
	once = sync.Once{}
}

func TestInfo_LdflagsWin(t *testing.T) {
	reset(t)
	Version, Commit, Date = "1.2.3", "abc123", "2025-06-19"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}}, true
	}

	got := Info()

	if !strings.HasPrefix(got, "zuba 1.2.3 (commit: abc123, built: 2025-06-19") {
		t.Errorf("Info() = %q", got)
	}
}

func TestInfo_BuildInfoFallback(t *testing.T) {
	reset(t)
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef0123"},
				{Key: "vcs.time", Value: "2025-06-26T10:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	}

	ensureInitialized()

	if Version != "v0.4.0" {
		t.Errorf("Version = %q, want %q", Version, "v0.4.0")
	}
	if Commit != "0123456789ab-dirty" {
		t.Errorf("Commit = %q, want %q", Commit, "0123456789ab-dirty")
	}
	if Date != "2025-06-26T10:00:00Z" {
		t.Errorf("Date = %q", Date)
	}
}

func TestInfo_NoBuildInfo(t *testing.T) {
	reset(t)
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }

	if got := Short(); got != "dev" {
		t.Errorf("Short() = %q, want %q", got, "dev")
	}
	if Commit != "unknown" || Date != "unknown" {
		t.Errorf("Commit/Date = %q/%q, want unknown/unknown", Commit, Date)
	}
}

func TestInfo_DevelVersionIgnored(t *testing.T) {
	reset(t)
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}

	if got := Short(); got != "dev" {
		t.Errorf("Short() = %q, want %q", got, "dev")
	}
}
