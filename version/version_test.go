package version

import (
	"strings"
	"testing"
)

func restore() func() {
	v, c, b := Version, GitCommit, BuildTime
	return func() { Version, GitCommit, BuildTime = v, c, b }
}

func TestGet_Dev(t *testing.T) {
	defer restore()()
	Version, GitCommit, BuildTime = "dev", "", ""

	info := Get()
	if info.Version != "dev" || info.IsRelease {
		t.Errorf("info = %+v", info)
	}
}

func TestGet_LinkerValues(t *testing.T) {
	defer restore()()
	Version, GitCommit, BuildTime = "1.4.0", "abcdef0123456", "2026-01-15T10:30:00Z"

	info := Get()
	if !info.IsRelease {
		t.Error("1.4.0 should be a release")
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("GitCommit = %q, want shortened", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildTime = %q", info.BuildTime)
	}
}

func TestGet_DirtyIsNotRelease(t *testing.T) {
	defer restore()()
	Version = "1.4.0-dirty"
	if Get().IsRelease {
		t.Error("dirty build reported as release")
	}
}

func TestShort(t *testing.T) {
	defer restore()()
	Version, GitCommit = "2.0.0", "1234567"
	if got := Short(); !strings.HasPrefix(got, "2.0.0-1234567") {
		t.Errorf("Short() = %q", got)
	}
}
