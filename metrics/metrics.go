// Package metrics derives the synthetic cost figures shown next to the animation
package metrics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/kernel-lens/parameter"
)

// Report is the derived metric set for one parameter combination
type Report struct {
	Latency    float64 // Estimated microseconds, one decimal place
	CacheHit   int     // Percent
	IOOps      int
	TransferKB int // Transfer size rounded up to whole kilobytes

	// Breakdown is the per-layer latency contribution in pipeline order
	Breakdown [6]float64
}

// Calculate derives the report from transfer size in bytes and cache-hit percent
// Out-of-range inputs are clamped: size to [MinTransferSize,MaxTransferSize], cache to [0,100]
func Calculate(transferSize, cacheHit int) Report {
	transferSize = min(max(transferSize, parameter.MinTransferSize), parameter.MaxTransferSize)
	cacheHit = min(max(cacheHit, 0), 100)

	blocks := ceilDiv(transferSize, parameter.BlockSize)
	ioOps := IOOps(blocks, cacheHit)

	breakdown := [6]float64{
		parameter.CostUserSpace,
		parameter.CostSyscall,
		parameter.CostVFS,
		float64(ioOps) * parameter.CostFilesystemPerOp,
		float64(ioOps) * parameter.CostBlockPerOp,
		0,
	}
	var total float64
	for _, c := range breakdown {
		total += c
	}

	return Report{
		Latency:    math.Round(total*10) / 10,
		CacheHit:   cacheHit,
		IOOps:      ioOps,
		TransferKB: ceilDiv(transferSize, parameter.KiloByte),
		Breakdown:  breakdown,
	}
}

// IOOps is the number of blocks expected to miss the page cache, rounded up
func IOOps(blocks, cacheHit int) int {
	// Integer form of ceil((100-cache)/100 * blocks), avoids 0.15*4 style float drift
	return ceilDiv((100-cacheHit)*blocks, 100)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// LatencyText formats latency with its unit label
func (r Report) LatencyText() string {
	return fmt.Sprintf("%.1fμs", r.Latency)
}

// CacheText formats the cache-hit rate with its unit label
func (r Report) CacheText() string {
	return fmt.Sprintf("%d%%", r.CacheHit)
}

// TransferText formats the transfer size in kilobytes
func (r Report) TransferText() string {
	return fmt.Sprintf("%dKB", r.TransferKB)
}
