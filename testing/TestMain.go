// Package testing is blank-imported by test packages that touch the app
// wiring. It switches the binaries into test mode and points outbound
// clients at addresses that refuse connections.
package testing

import (
	"os"
	stdtesting "testing"
)

// forced values always win; fallbacks only fill gaps so a developer can aim
// a test run at a real sandbox.
var (
	forced = map[string]string{
		"QANDA_TEST_MODE": "1",
	}
	fallbacks = map[string]string{
		"API_LAYER_URL": "http://127.0.0.1:0",
	}
)

func applyEnv() {
	for key, value := range forced {
		_ = os.Setenv(key, value)
	}
	for key, value := range fallbacks {
		if _, ok := os.LookupEnv(key); !ok {
			_ = os.Setenv(key, value)
		}
	}
}

func init() {
	applyEnv()
}

// TestMain is available to packages that want to delegate their own
// TestMain here.
func TestMain(m *stdtesting.M) {
	applyEnv()
	os.Exit(m.Run())
}
