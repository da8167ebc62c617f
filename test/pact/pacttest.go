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
	ProviderName = "petcare-reminders-api"
	ConsumerName = "petcare-portal"

	StateRemindersBaseline = "reminders baseline"
	StateReminderExists    = "reminder rem-101 exists for user-1"
	StateReminderMissing   = "no reminder with id rem-404"
)

const (
	UserID            = "user-1"
	PetID             = "pet-1"
	PetName           = "Biscuit"
	ExistingReminder  = "rem-101"
	MissingReminder   = "rem-404"
	ExampleTitle      = "Rabies booster"
	ExampleDueDate    = "2030-05-20"
	ExampleCareType   = "vaccine"
	ExampleInterval   = "yearly"
	ExampleRecurrence = true
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

// ExampleCreatePayload is the create body the portal sends.
func ExampleCreatePayload() map[string]any {
	return map[string]any{
		"userId":            UserID,
		"petId":             PetID,
		"type":              ExampleCareType,
		"title":             ExampleTitle,
		"dueDate":           ExampleDueDate,
		"recurring":         ExampleRecurrence,
		"recurringInterval": ExampleInterval,
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
