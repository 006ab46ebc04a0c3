package logging

import "testing"

func TestNew_Levels(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "INFO", "bogus", ""}
	for _, level := range levels {
		logger := New(level)
		if logger == nil || logger.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestWith(t *testing.T) {
	logger := Default().With("component", "test")
	if logger == nil || logger.Logger == nil {
		t.Fatal("With() returned nil logger")
	}
}
