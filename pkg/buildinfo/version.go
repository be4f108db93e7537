// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/MatthieuRouland/effectsize/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/MatthieuRouland/effectsize/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/MatthieuRouland/effectsize/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/effectsize
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// shortCommit is the length of an abbreviated commit SHA.
const shortCommit = 7

// Short returns the version and abbreviated commit, e.g. "v1.2.3 (abc1234)".
func Short() string {
	c := Commit
	if len(c) > shortCommit {
		c = c[:shortCommit]
	}
	return fmt.Sprintf("%s (%s)", Version, c)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\nbuilt: %s\ngo: %s\n", Short(), Date, runtime.Version())
}
