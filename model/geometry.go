package model

import "fmt"

// BBox represents a bounding box (rectangle) in page units.
// (X0, Y0) is the top-left corner and (X1, Y1) the bottom-right corner,
// with the page origin at the top left. A well-formed box has X0 < X1 and
// Y0 < Y1; this is not enforced at construction because upstream extractors
// occasionally emit degenerate boxes, and the planner validates boxes
// before any redaction is committed.
type BBox struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// NewBBox creates a bounding box from corner coordinates.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Valid returns true if the box has positive extent on both axes.
func (b BBox) Valid() bool {
	return b.X0 < b.X1 && b.Y0 < b.Y1
}

// WithinPage returns true if the box is well formed and lies entirely
// inside a page of the given dimensions.
func (b BBox) WithinPage(width, height float64) bool {
	return 0 <= b.X0 && b.X0 < b.X1 && b.X1 <= width &&
		0 <= b.Y0 && b.Y0 < b.Y1 && b.Y1 <= height
}

// Intersects checks if two bounding boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return b.X0 < other.X1 && b.X1 > other.X0 &&
		b.Y0 < other.Y1 && b.Y1 > other.Y0
}

func (b BBox) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", b.X0, b.Y0, b.X1, b.Y1)
}
