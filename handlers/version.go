package handlers

import (
	"net/http"
	"runtime/debug"
	"sync"
)

// Version is overridden at build time with
// -ldflags "-X streamfinder/handlers.Version=v1.2.3".
var Version string

var (
	resolvedVersion string
	versionOnce     sync.Once
)

type VersionResponse struct {
	Version string `json:"version"`
}

// BuildVersion returns the ldflags version, else the module version from the
// build info, else "unknown". The result is cached after the first call.
func BuildVersion() string {
	versionOnce.Do(func() {
		resolvedVersion = resolveVersion(Version, debug.ReadBuildInfo)
	})
	return resolvedVersion
}

func resolveVersion(ldflags string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if ldflags != "" {
		return ldflags
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "unknown"
}

// GetVersion handles GET /api/version.
func GetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: BuildVersion()})
}
