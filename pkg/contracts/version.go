// Package contracts carries the module's public surface: the shared domain
// types under contracts/domain and the version identity of the binaries.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the module version.
	Version = "0.3.0"

	// LedgerFormatVersion identifies the ledger CSV schema revision. It
	// changes only when a column is added or renamed.
	LedgerFormatVersion = "v1"
)

// BuildTime and GitCommit are stamped at build time via -ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionString returns the short human-readable version.
func VersionString() string {
	return fmt.Sprintf("fiipulse v%s", Version)
}

// FullVersionString returns the version plus build and runtime metadata.
func FullVersionString() string {
	return fmt.Sprintf("%s (ledger schema %s, built %s, commit %s, %s %s/%s)",
		VersionString(), LedgerFormatVersion, BuildTime, GitCommit,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
