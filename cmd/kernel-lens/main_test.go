package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/kernel-lens/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != "kernel-lens "+version {
		t.Errorf("version output = %q", out)
	}
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "levels")
	if err != nil {
		t.Fatalf("levels failed: %v", err)
	}
	for _, want := range []string{"newcomer", "developer", "expert", "0.5x", "1.5x", "simple", "breakdown", "Detailed view for kernel developers"} {
		if !strings.Contains(out, want) {
			t.Errorf("levels output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"defaults", []string{"metrics"}, []string{"cache hit 85%", "I/O ops 1", "transfer 4KB", "device"}},
		{"all misses", []string{"metrics", "--cache", "0"}, []string{"latency 163.5μs", "I/O ops 1"}},
		{"large read", []string{"metrics", "-c", "0", "-s", "65536"}, []string{"latency 2563.5μs", "I/O ops 16", "transfer 64KB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("metrics failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestMetricsCommandRejectsInvalid(t *testing.T) {
	tests := [][]string{
		{"metrics", "--cache", "101"},
		{"metrics", "--level", "wizard"},
		{"metrics", "--syscall", "write"},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		if !errors.Is(err, config.ErrInvalid) {
			t.Errorf("%v: expected ErrInvalid, got %v", args, err)
		}
	}
}

func TestMetricsCommandConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("cache_hit: 0\ntransfer_size: 65536\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "metrics", "--config", path)
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if !strings.Contains(out, "I/O ops 16") {
		t.Errorf("config file not applied:\n%s", out)
	}

	// Flags win over the file
	out, err = execute(t, "metrics", "--config", path, "--cache", "100")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if !strings.Contains(out, "I/O ops 0") {
		t.Errorf("flag did not override file:\n%s", out)
	}
}
