// Package version exposes build metadata for headercheck.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the release version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String returns the version line printed by "headercheck --version", e.g.
// "v1.2.0 (revision abc123, built 2026-01-02 by ci) go1.25.0 linux/amd64".
// Builds without ldflags report the module version from the build info, or
// "devel".
func String() string {
	v := Version
	if v == "" {
		v = moduleVersion()
	}

	var details []string
	if Revision != "" && Revision != "unknown" {
		details = append(details, "revision "+Revision)
	}

	if Branch != "" {
		details = append(details, "branch "+Branch)
	}

	switch {
	case BuildDate != "" && BuildUser != "":
		details = append(details, fmt.Sprintf("built %s by %s", BuildDate, BuildUser))
	case BuildDate != "":
		details = append(details, "built "+BuildDate)
	}

	var sb strings.Builder

	sb.WriteString(v)

	if len(details) > 0 {
		sb.WriteString(" (" + strings.Join(details, ", ") + ")")
	}

	fmt.Fprintf(&sb, " %s %s/%s", GoVersion, GoOS, GoArch)

	return sb.String()
}

func moduleVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok || buildInfo.Main.Version == "" || buildInfo.Main.Version == "(devel)" {
		return "devel"
	}

	return buildInfo.Main.Version
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			modified = v.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
