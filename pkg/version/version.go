package version

import "fmt"

// Injected at build time via -ldflags "-X frameworks/pkg/version.Version=...".
var (
	Version       = "dev"
	GitCommit     = "unknown"
	BuildDate     = "unknown"
	ComponentName = "unknown" // lookout, lookout-tools, cli
)

// Info represents version information for a binary
type Info struct {
	Version       string `json:"version"`
	GitCommit     string `json:"git_commit"`
	BuildDate     string `json:"build_date"`
	ComponentName string `json:"component_name,omitempty"`
}

func GetInfo() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		ComponentName: ComponentName,
	}
}

// GetShortCommit returns the short git commit hash (first 7 characters)
func GetShortCommit() string {
	if len(GitCommit) >= 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

// String renders a one-line banner for logs and `lookout version`.
func (i Info) String() string {
	name := i.ComponentName
	if name == "" || name == "unknown" {
		name = "lookout"
	}
	return fmt.Sprintf("%s %s (commit %s, built %s)", name, i.Version, GetShortCommit(), i.BuildDate)
}
