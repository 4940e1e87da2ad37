// Package version reports the palettepro build version.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Version is stamped by release builds:
//
//	-ldflags="-X github.com/wethinkt/go-palettepro/internal/version.Version=v1.2.0"
var Version = ""

// Info describes the running binary.
type Info struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Revision  string    `json:"revision,omitempty"`
	Committed time.Time `json:"committed,omitzero"`
	Modified  bool      `json:"modified,omitempty"`
	GoVersion string    `json:"go_version,omitempty"`
}

var buildInfo = sync.OnceValue(func() Info {
	var info Info
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.time":
			info.Committed, _ = time.Parse(time.RFC3339, s.Value)
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
})

// GetInfo returns the build metadata for the binary called name.
func GetInfo(name string) Info {
	info := buildInfo()
	info.Name = name
	info.Version = Get()
	return info
}

// Get returns the stamped version, the module version, "dev-<rev>" for
// VCS builds, or "dev".
func Get() string {
	if Version != "" {
		return Version
	}
	info := buildInfo()
	switch {
	case info.Version != "":
		return info.Version
	case info.Revision != "":
		return "dev-" + shortRev(info.Revision)
	}
	return "dev"
}

// String formats a one-line version summary such as
// "palettepro version dev-1a2b3c4 (modified, go1.25.6)".
func String(name string) string {
	info := GetInfo(name)
	var extra []string
	if info.Modified {
		extra = append(extra, "modified")
	}
	if info.GoVersion != "" {
		extra = append(extra, info.GoVersion)
	}
	s := fmt.Sprintf("%s version %s", name, info.Version)
	if len(extra) > 0 {
		s += " (" + strings.Join(extra, ", ") + ")"
	}
	return s
}

func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
