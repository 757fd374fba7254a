package metrics

import (
	"math"
	"testing"
)

func TestCalculateExamples(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		cache      int
		wantOps    int
		wantLat    float64
		wantKB     int
		wantLatTxt string
	}{
		{"one block all cached", 4096, 100, 0, 3.5, 4, "3.5μs"},
		{"one block never cached", 4096, 0, 1, 163.5, 4, "163.5μs"},
		{"four blocks mostly cached", 16384, 85, 1, 163.5, 16, "163.5μs"},
		{"four blocks half cached", 16384, 50, 2, 323.5, 16, "323.5μs"},
		{"partial block rounds up", 100, 0, 1, 163.5, 1, "163.5μs"},
		{"one byte over a block", 4097, 0, 2, 323.5, 5, "323.5μs"},
		{"default parameters", 4096, 85, 1, 163.5, 4, "163.5μs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(tt.size, tt.cache)
			if r.IOOps != tt.wantOps {
				t.Errorf("IOOps = %d, want %d", r.IOOps, tt.wantOps)
			}
			if r.Latency != tt.wantLat {
				t.Errorf("Latency = %v, want %v", r.Latency, tt.wantLat)
			}
			if r.TransferKB != tt.wantKB {
				t.Errorf("TransferKB = %d, want %d", r.TransferKB, tt.wantKB)
			}
			if r.CacheHit != tt.cache {
				t.Errorf("CacheHit = %d, want %d", r.CacheHit, tt.cache)
			}
			if got := r.LatencyText(); got != tt.wantLatTxt {
				t.Errorf("LatencyText() = %q, want %q", got, tt.wantLatTxt)
			}
		})
	}
}

// TestCalculateBounds sweeps the parameter space for the floor invariants
func TestCalculateBounds(t *testing.T) {
	for size := 1; size <= 1<<20; size = size*3 + 7 {
		for cache := 0; cache <= 100; cache++ {
			r := Calculate(size, cache)
			if r.IOOps < 0 {
				t.Fatalf("size=%d cache=%d: negative IOOps %d", size, cache, r.IOOps)
			}
			if r.Latency < 3.5 {
				t.Fatalf("size=%d cache=%d: latency %v below fixed cost floor", size, cache, r.Latency)
			}

			blocks := int(math.Ceil(float64(size) / 4096))
			if r.IOOps > blocks {
				t.Fatalf("size=%d cache=%d: IOOps %d exceeds block count %d", size, cache, r.IOOps, blocks)
			}
			if cache == 100 && r.IOOps != 0 {
				t.Fatalf("size=%d: fully cached read issued %d ops", size, r.IOOps)
			}
		}
	}
}

func TestBreakdownSumsToLatency(t *testing.T) {
	r := Calculate(65536, 40)

	var sum float64
	for _, c := range r.Breakdown {
		sum += c
	}
	if math.Abs(sum-r.Latency) > 0.05 {
		t.Errorf("breakdown sum %v != latency %v", sum, r.Latency)
	}
	if r.Breakdown[3] != float64(r.IOOps)*10 || r.Breakdown[4] != float64(r.IOOps)*150 {
		t.Errorf("I/O bound layers do not scale with ops: %v", r.Breakdown)
	}
}

func TestCalculateClampsInput(t *testing.T) {
	r := Calculate(0, 140)
	if r.CacheHit != 100 || r.IOOps != 0 || r.TransferKB != 1 {
		t.Errorf("clamped report = %+v", r)
	}

	r = Calculate(4096, -5)
	if r.CacheHit != 0 || r.IOOps != 1 {
		t.Errorf("negative cache not clamped: %+v", r)
	}

	// Sizes past the ceiling read as the largest transfer instead of overflowing
	huge := Calculate(math.MaxInt, 0)
	ceiling := Calculate(1<<20, 0)
	if huge.IOOps != 256 || huge.TransferKB != 1024 || huge.Latency != ceiling.Latency {
		t.Errorf("oversized transfer = %+v, want %+v", huge, ceiling)
	}
}

func TestTextFormatting(t *testing.T) {
	r := Calculate(2048, 85)
	if r.CacheText() != "85%" {
		t.Errorf("CacheText() = %q", r.CacheText())
	}
	if r.TransferText() != "2KB" {
		t.Errorf("TransferText() = %q", r.TransferText())
	}
}
