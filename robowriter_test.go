package robowriter

import (
	"embed"
	"log/slog"
	"os"
	"testing"
)

func init() {
	// set logging level to debugging if required.
	if os.Getenv("DEBUG") == "1" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	// set the wait multiplier to 0 to avoid delaying tests.
	gWaitMultiplier = 0
}

//go:embed testdata/*.txt
var testFS embed.FS

func loadTestFont(t *testing.T) *Font {
	t.Helper()
	f, err := testFS.Open("testdata/SingleStrokeFont.txt")
	if err != nil {
		t.Fatalf("Failed to open test font: %v", err)
	}
	defer f.Close()
	font, err := LoadFont(f)
	if err != nil {
		t.Fatalf("Failed to load test font: %v", err)
	}
	return font
}
