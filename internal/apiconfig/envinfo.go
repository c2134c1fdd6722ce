package apiconfig

import (
	"time"

	"github.com/angeloszaimis/proxy-dashboard/internal/environment"
)

// EnvInfo describes the running process for display. BuildTime is taken
// when the snapshot is built at bootstrap and is informational only.
type EnvInfo struct {
	Mode      string    `json:"mode"`
	Dev       bool      `json:"dev"`
	Prod      bool      `json:"prod"`
	Origin    string    `json:"origin"`
	BuildTime time.Time `json:"buildTime"`
}

// BuildEnvInfo keeps the raw mode string so an unrecognised value is still
// visible to whoever is debugging the deployment.
func BuildEnvInfo(mode string, origin string, now time.Time) EnvInfo {
	env := environment.Resolve(mode)

	return EnvInfo{
		Mode:      mode,
		Dev:       env == environment.Development,
		Prod:      env == environment.Production,
		Origin:    origin,
		BuildTime: now.UTC(),
	}
}
