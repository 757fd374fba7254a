package core

// Point is a position in design space (not terminal cells)
type Point struct {
	X, Y float64
}
