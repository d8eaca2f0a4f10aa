package app

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/heartmarshall/vocabook/internal/app.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the human-readable version shown by `vocab --version`,
// the startup log and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", Version, Commit, BuildTime, runtime.Version())
}

// UserAgent identifies the CLI to the persistence gateway.
func UserAgent() string {
	return "vocabook/" + Version
}
