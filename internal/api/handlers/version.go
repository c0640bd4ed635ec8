package handlers

import (
	"encoding/json"
	"net/http"
)

// BuildInfo is populated by the main package from build-time ldflags, or
// left at its zero value in dev builds.
var BuildInfo = struct {
	Version string
	Commit  string
	Built   string
}{
	Version: "dev",
}

// Version returns build metadata for the running binary.
func Version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"version": BuildInfo.Version,
		"commit":  BuildInfo.Commit,
		"built":   BuildInfo.Built,
	})
}
