// Package buildinfo carries the version stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X boxdemo/internal/buildinfo.Version=v0.3.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for window titles and the HUD.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String returns the full version line printed by `boxdemo version`.
func String() string {
	return fmt.Sprintf("boxdemo %s (commit %s, built %s)", Version, Commit, Date)
}
