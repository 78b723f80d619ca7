//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "maintenance-api"
	ConsumerName = "maintenance-portal"

	StateOrdersBaseline = "accessory orders baseline"
	StateOrderExists    = "accessory order with id 301 exists"
	StateOrderMissing   = "no accessory order with id 999"
)

const (
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999

	ExampleOrderNumber = "PED-2024-031"
	ExampleRequester   = "marcos"
	ExampleSector      = "knitting"
	ExampleItemCode    = "AG-7"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable request data for order interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"number":      ExampleOrderNumber,
		"requestedBy": ExampleRequester,
		"sector":      ExampleSector,
		"items": []map[string]any{
			{
				"code":        ExampleItemCode,
				"description": "needles 7g for circular loom",
				"unit":        "box",
				"quantity":    5,
			},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
