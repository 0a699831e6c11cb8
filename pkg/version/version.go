// Package version reports the pubpager build version.
package version

import "runtime/debug"

// Set with -ldflags "-X github.com/researchfolio/pubpager/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Overridden at link time.
var version = ""

// GetVersion returns the linked version, the module version from build info,
// or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
