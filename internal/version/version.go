package version

// Overridden at build time via -ldflags.
var (
	Version   = ""
	Commit    = ""
	BuildDate = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// Get returns build info, defaulting unset fields to "dev".
func Get() Info {
	info := Info{Version: Version, Commit: Commit, BuildDate: BuildDate}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "dev"
	}
	if info.BuildDate == "" {
		info.BuildDate = "dev"
	}
	return info
}
