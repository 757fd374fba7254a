package parameter

// Synthetic Latency Model (microseconds)
const (
	// BlockSize is the filesystem block size used to count I/O operations
	BlockSize = 4096

	// KiloByte rounds the transfer display up to whole kilobytes
	KiloByte = 1024

	// Fixed per-layer costs
	CostUserSpace = 1.0
	CostSyscall   = 0.5
	CostVFS       = 2.0

	// Per I/O operation costs
	CostFilesystemPerOp = 10.0
	CostBlockPerOp      = 150.0
)

// Simulation Parameter Defaults & Ranges
const (
	DefaultDescriptor   = 3
	DefaultTransferSize = 4096
	DefaultCacheHit     = 85

	MinDescriptor   = 0
	MaxDescriptor   = 1023
	MinTransferSize = 1
	MaxTransferSize = 1 << 20
	MinCacheHit     = 0
	MaxCacheHit     = 100
)
