package smoothing

import (
	"image"
	"math"
)

// BoundingBox is an axis-aligned box given by its corners, origin at top-left, units are pixels.
// Well-formed boxes have X1 <= X2 and Y1 <= Y2; nothing here repairs a malformed one.
type BoundingBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

func NewBoundingBoxFrom(rect image.Rectangle) BoundingBox {
	return BoundingBox{
		X1: float64(rect.Min.X),
		Y1: float64(rect.Min.Y),
		X2: float64(rect.Max.X),
		Y2: float64(rect.Max.Y),
	}
}

// NewBoundingBoxFromCenter reconstructs corners from a center and a size.
func NewBoundingBoxFromCenter(center Point, size Size) BoundingBox {
	return BoundingBox{
		X1: center.X - size.Width/2.0,
		Y1: center.Y - size.Height/2.0,
		X2: center.X + size.Width/2.0,
		Y2: center.Y + size.Height/2.0,
	}
}

// Center returns midpoint of the box
func (bbox BoundingBox) Center() Point {
	return Point{
		X: (bbox.X1 + bbox.X2) / 2.0,
		Y: (bbox.Y1 + bbox.Y2) / 2.0,
	}
}

// Size returns width and height of the box
func (bbox BoundingBox) Size() Size {
	return Size{
		Width:  bbox.X2 - bbox.X1,
		Height: bbox.Y2 - bbox.Y1,
	}
}

// Round rounds every corner to the nearest integer pixel
func (bbox BoundingBox) Round() BoundingBox {
	return BoundingBox{
		X1: math.Round(bbox.X1),
		Y1: math.Round(bbox.Y1),
		X2: math.Round(bbox.X2),
		Y2: math.Round(bbox.Y2),
	}
}

// ImageRect converts the box into image.Rectangle. Corners are rounded first.
func (bbox BoundingBox) ImageRect() image.Rectangle {
	r := bbox.Round()
	return image.Rect(int(r.X1), int(r.Y1), int(r.X2), int(r.Y2))
}

// Rect converts the box into top-left/width/height form
func (bbox BoundingBox) Rect() Rectangle {
	return Rectangle{
		X:      bbox.X1,
		Y:      bbox.Y1,
		Width:  bbox.X2 - bbox.X1,
		Height: bbox.Y2 - bbox.Y1,
	}
}

// isFinite reports whether corners and the values derived from them (center, size) are finite.
// Corners near ±math.MaxFloat64 are finite themselves but overflow in Center or Size.
func (bbox BoundingBox) isFinite() bool {
	if !(isFinite(bbox.X1) && isFinite(bbox.Y1) && isFinite(bbox.X2) && isFinite(bbox.Y2)) {
		return false
	}
	center := bbox.Center()
	size := bbox.Size()
	return isFinite(center.X) && isFinite(center.Y) && isFinite(size.Width) && isFinite(size.Height)
}

type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// BoundingBox converts the rectangle into corner form
func (rect Rectangle) BoundingBox() BoundingBox {
	return BoundingBox{
		X1: rect.X,
		Y1: rect.Y,
		X2: rect.X + rect.Width,
		Y2: rect.Y + rect.Height,
	}
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

type Size struct {
	Width  float64
	Height float64
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p1.X-p2.X, 2) + math.Pow(p1.Y-p2.Y, 2))
}
