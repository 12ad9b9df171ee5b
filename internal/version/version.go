package version

import (
	"crypto/sha256"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Version is the current semantic version
const Version = "0.2.0"

// Stamped at build time:
//
//	go build -ldflags "-X github.com/standardbeagle/rootstem/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// FullInfo is the one-line description printed by `rootstem version` and
// reported by the MCP info tool
func FullInfo() string {
	return fmt.Sprintf("rootstem %s (commit: %s, built: %s, build id: %s, %s)",
		Version, GitCommit, BuildDate, BuildID(), runtime.Version())
}

var (
	buildID     string
	buildIDOnce sync.Once
)

// BuildID returns a fingerprint of the running binary. The MCP server reports
// it so clients can tell two builds of the same version apart.
func BuildID() string {
	buildIDOnce.Do(func() {
		buildID = computeBuildID()
	})
	return buildID
}

func computeBuildID() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version + "-" + GitCommit
	}

	h := sha256.New()
	h.Write([]byte(info.GoVersion))
	h.Write([]byte(info.Main.Path))
	h.Write([]byte(info.Main.Version))

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.modified":
			h.Write([]byte(s.Key))
			h.Write([]byte(s.Value))
		}
	}

	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
