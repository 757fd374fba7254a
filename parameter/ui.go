package parameter

// Design Space
// Layer positions and shape paths are authored in a fixed design space, renderers scale it to the terminal
const (
	ViewWidth  = 600.0
	ViewHeight = 500.0
)

// Layout & Margins (terminal cells)
const (
	// BottomMargin for the control bar and metrics row
	BottomMargin = 3

	// TopMargin for the title row
	TopMargin = 1

	// LayerBandWidth is the column width reserved for the layer name bands on the left
	LayerBandWidth = 22

	// TooltipWidth is the maximum tooltip box width including border
	TooltipWidth = 48

	// TooltipOffset is the cell offset of the tooltip from the pointer
	TooltipOffset = 2
)

// Shape Label
const (
	// LabelX is the design-space column where the morphing shape's label starts, right of every outline
	LabelX = 380.0
)

// Control Steps
const (
	DescriptorStep   = 1
	TransferSizeStep = 1024
	CacheHitStep     = 5
)

// Tints
const (
	// HighlightTint is the active band background blend strength
	HighlightTint = 0.35

	// ShapeFillTint is the shape interior blend strength, edges are drawn opaque
	ShapeFillTint = 0.30

	// GuideDashEvery spaces the dashes of the layer separator lines
	GuideDashEvery = 2
)

// Metric Animation (harmonica spring)
const (
	MetricSpringFrequency = 6.0
	MetricSpringDamping   = 0.8
)

// UI Symbols
const (
	AudioStr     = "♫ "
	PausedStr    = " PAUSED "
	PlayingStr   = " PLAYING "
	ParticleRune = '●'
	SmallRune    = '•'
	RingRune     = '○'
	ShapeRune    = '█'
	ShapeEdge    = '▓'
)
