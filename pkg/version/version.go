package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set at build time via -ldflags "-X ...".
var (
	// Version is the semantic version
	Version = "dev"
	// Commit is the git commit hash
	Commit = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Info contains the version details reported by "parex version"
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"buildTime" yaml:"buildTime"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the version information for this binary
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns just the version and commit, for one-line output
func (i Info) Short() string {
	return fmt.Sprintf("parex %s (%s)", i.Version, i.Commit)
}

// String returns the full multi-line version report
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("parex\n")
	fmt.Fprintf(&sb, "  Version:    %s\n", i.Version)
	fmt.Fprintf(&sb, "  Commit:     %s\n", i.Commit)
	fmt.Fprintf(&sb, "  Build Time: %s\n", i.BuildTime)
	fmt.Fprintf(&sb, "  Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  Platform:   %s", i.Platform)
	return sb.String()
}
