package swfkit

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the release of this module.
const Version = "0.1.0"

// VersionInfo identifies the build a tool is running from.
type VersionInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// Release builds stamp these:
//
//	go build -ldflags="-X github.com/simonhull/swfkit.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/swfkit.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	gitCommit string
	buildTime string
)

// GetVersionInfo reports Version with the commit and build time of the
// binary. Stamped values win; otherwise the vcs settings the go command
// embeds are used, and "unknown" when there are none (go test, go run).
func GetVersionInfo() VersionInfo {
	v := VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && v.GitCommit == "":
				v.GitCommit = s.Value
			case s.Key == "vcs.time" && v.BuildTime == "":
				v.BuildTime = s.Value
			}
		}
	}

	if v.GitCommit == "" {
		v.GitCommit = "unknown"
	}
	if v.BuildTime == "" {
		v.BuildTime = "unknown"
	}
	return v
}

// String formats the version for --version output.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}
