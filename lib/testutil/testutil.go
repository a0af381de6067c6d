package testutil

import (
	"context"
	"os"
	"testing"

	"ilias-scraper/lib/telemetry"
)

var setupTelemetryNames = map[string]bool{}

// SetupTelemetry initializes telemetry for a test environment, at most
// once per service name. Tests run fine without a telemetry.json5
// nearby, spans just go nowhere.
func SetupTelemetry(t testing.TB, serviceName string) func() {
	if setupTelemetryNames[serviceName] {
		return func() {}
	}
	setupTelemetryNames[serviceName] = true

	telemetry.InitSlog(true)

	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, serviceName)
	if os.IsNotExist(err) {
		return func() {}
	}
	if err != nil {
		t.Fatal(err)
	}
	return func() {
		err := tel.Shutdown(ctx)
		if err != nil {
			t.Fatal(err)
		}
	}
}
