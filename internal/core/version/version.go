// Package version reports what build is running.
//
// Version, commit and date come from -ldflags, e.g.
//
//	-X 'inputdash/internal/core/version.version=v0.1.0' -X 'inputdash/internal/core/version.commit=abcd'
//
// An unset commit falls back to the VCS revision the go tool stamps into the binary.
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name every build reports
const Service = "inputdash-api"

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// stamped is what the go tool recorded in the binary
type stamped struct {
	goVersion string
	revision  string
	modified  bool
}

var readStamp = sync.OnceValue(func() stamped {
	var s stamped
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return s
	}
	s.goVersion = bi.GoVersion
	for _, kv := range bi.Settings {
		switch kv.Key {
		case "vcs.revision":
			s.revision = kv.Value
		case "vcs.modified":
			s.modified = kv.Value == "true"
		}
	}
	return s
})

// Info returns the build information
func Info() BuildInfo {
	st := readStamp()
	return BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    Commit(),
		Date:      date,
		GoVersion: st.goVersion,
		Dirty:     st.modified,
	}
}

// Commit is the ldflags commit, else the stamped revision, else "none"
func Commit() string {
	if commit != "none" && commit != "" {
		return commit
	}
	if rev := readStamp().revision; rev != "" {
		return rev
	}
	return "none"
}

// Short is Commit cut to seven characters
func Short() string {
	c := Commit()
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
