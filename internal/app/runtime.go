package app

import (
	"os"
	"strconv"
)

// TestModeEnv names the variable that keeps the binaries from dialing
// Postgres, Redis and the profanity API while `go test ./...` runs.
const TestModeEnv = "QANDA_TEST_MODE"

// RuntimeMode tells a binary whether to start its servers.
type RuntimeMode int

const (
	ModeServe RuntimeMode = iota
	ModeTest
)

// DetectMode reads TestModeEnv through lookup. Any value strconv.ParseBool
// accepts as true selects ModeTest.
func DetectMode(lookup func(string) (string, bool)) RuntimeMode {
	raw, ok := lookup(TestModeEnv)
	if !ok {
		return ModeServe
	}
	on, err := strconv.ParseBool(raw)
	if err != nil || !on {
		return ModeServe
	}
	return ModeTest
}

// InTestMode reports whether the process environment selects ModeTest.
func InTestMode() bool {
	return DetectMode(os.LookupEnv) == ModeTest
}

func (m RuntimeMode) String() string {
	if m == ModeTest {
		return "test"
	}
	return "serve"
}
