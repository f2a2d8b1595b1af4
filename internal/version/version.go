package version

import "runtime/debug"

// String reports the module version recorded at build time, or "(devel)"
// for local builds.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(devel)"
	}
	v := info.Main.Version
	if v == "" {
		return "(devel)"
	}
	return v
}
