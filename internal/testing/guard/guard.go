// Package guard switches the process into test mode when imported, so that
// command entry points return before opening connections.
package guard

import (
	"os"

	"github.com/odyssey-erp/opsdesk/internal/app"
)

func init() {
	if os.Getenv(app.TestModeEnv) == "" {
		_ = os.Setenv(app.TestModeEnv, "1")
	}
	app.RefreshTestMode()
}
