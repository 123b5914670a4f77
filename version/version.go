// Package version provides build version information for the client's
// User-Agent header.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Short returns "version" or "version-commit" when the commit is known.
func Short() string {
	commit := GitCommit
	if commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					commit = setting.Value
					break
				}
			}
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" {
		return fmt.Sprintf("%s-%s", Version, commit)
	}
	return Version
}

// UserAgent returns the User-Agent value sent with every request.
func UserAgent() string {
	return "restkit/" + Short()
}
