package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logger, closer, err := setupLogging(logOptions{})
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if closer != nil {
		t.Error("Expected nil closer when no sink is enabled")
		closer.Close()
	}
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("Expected discarding logger when no sink is enabled")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := setupLogging(logOptions{Debug: true, Dir: dir})
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	if closer == nil {
		t.Fatal("Expected non-nil closer when debug=true")
	}
	defer closer.Close()

	logPath := filepath.Join(dir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Expected log file to be created")
	}

	logger.Info("test log message", "layer", 3)

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Level(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := setupLogging(logOptions{Debug: true, Dir: dir, Level: "warn"})
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	defer closer.Close()

	ctx := context.Background()
	if logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be filtered at warn level")
	}
	if !logger.Enabled(ctx, slog.LevelWarn) {
		t.Error("warn should pass at warn level")
	}

	if _, _, err := setupLogging(logOptions{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, logFileName)

	// Just over the rotation threshold
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("Failed to create large log file: %v", err)
	}

	_, closer, err := setupLogging(logOptions{Debug: true, Dir: dir})
	if err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	defer closer.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestToJournalKey(t *testing.T) {
	tests := map[string]string{
		"level":        "LEVEL",
		"cache-hit":    "CACHE_HIT",
		"layer.index2": "LAYER_INDEX2",
	}
	for in, want := range tests {
		if got := toJournalKey(in); got != want {
			t.Errorf("toJournalKey(%q) = %q, want %q", in, got, want)
		}
	}
}
