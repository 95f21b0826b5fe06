package common

import (
	"fmt"
	"runtime/debug"
)

// Injected at build time via -ldflags
// "-X github.com/teachforge-io/agent/internal/common.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// GetModuleBuildInfo resolves the agent version and commit, preferring the
// ldflags values and falling back to the module info the toolchain embeds.
func GetModuleBuildInfo() (string, string, bool) {
	if Version != "dev" {
		return Version, GitCommit, true
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}

	gitCommit := GitCommit
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			gitCommit = setting.Value
			break
		}
	}

	return info.Main.Version, gitCommit, true
}

// GetBuildIdentifier returns the product token sent as the User-Agent on
// every API request, e.g. "teachforge-agent/v1.2.0+4f9c21aa".
func GetBuildIdentifier() string {
	version, gitCommit, ok := GetModuleBuildInfo()
	if !ok {
		return "teachforge-agent/dev"
	}

	if len(gitCommit) > 8 {
		gitCommit = gitCommit[:8]
	}
	if len(gitCommit) == 0 || gitCommit == "unknown" {
		return fmt.Sprintf("teachforge-agent/%s", version)
	}
	return fmt.Sprintf("teachforge-agent/%s+%s", version, gitCommit)
}
