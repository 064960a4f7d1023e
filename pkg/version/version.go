package version

// Version is set at build time via -ldflags "-X .../pkg/version.Version=..."
var Version = "v0.1.0"

// GetVersion returns the version string
func GetVersion() string {
	return Version
}
