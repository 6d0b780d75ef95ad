package smoothing

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ShapeKind is for membership function shape
type ShapeKind uint16

const (
	// ShapeTrapezoid is a piecewise-linear curve with a flat top between B and C
	ShapeTrapezoid ShapeKind = iota
	// ShapeTriangle is a piecewise-linear curve with a single peak at B
	ShapeTriangle
)

func (kind ShapeKind) String() string {
	switch kind {
	case ShapeTrapezoid:
		return "trapezoid"
	case ShapeTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint16(kind))
	}
}

// MembershipFunction maps a crisp value to a degree of membership in [0, 1].
// Implemented by Trapezoid and Triangle.
type MembershipFunction interface {
	Evaluate(x float64) float64
	Kind() ShapeKind
	Breakpoints() []float64
}

// Evaluate returns degree of membership of x in fn
func Evaluate(fn MembershipFunction, x float64) float64 {
	return fn.Evaluate(x)
}

// Trapezoid is zero outside (A, D), rises on [A, B], stays at one on [B, C] and falls on [C, D].
// A == B (or C == D) turns the corresponding ramp into a step, giving a left (right) shoulder.
type Trapezoid struct {
	A, B, C, D float64
}

// NewTrapezoid creates trapezoid and checks that A <= B <= C <= D
func NewTrapezoid(a, b, c, d float64) (Trapezoid, error) {
	trap := Trapezoid{A: a, B: b, C: c, D: d}
	if err := checkBreakpoints(a, b, c, d); err != nil {
		return Trapezoid{}, errors.Wrapf(err, "trapezoid %v", trap.Breakpoints())
	}
	return trap, nil
}

// Evaluate returns degree of membership of x. NaN yields zero.
func (trap Trapezoid) Evaluate(x float64) float64 {
	return piecewise(x, trap.A, trap.B, trap.C, trap.D)
}

// Kind returns ShapeTrapezoid
func (trap Trapezoid) Kind() ShapeKind {
	return ShapeTrapezoid
}

// Breakpoints returns [A, B, C, D]
func (trap Trapezoid) Breakpoints() []float64 {
	return []float64{trap.A, trap.B, trap.C, trap.D}
}

// Triangle is zero outside (A, C) and peaks with one at B.
type Triangle struct {
	A, B, C float64
}

// NewTriangle creates triangle and checks that A <= B <= C
func NewTriangle(a, b, c float64) (Triangle, error) {
	tri := Triangle{A: a, B: b, C: c}
	if err := checkBreakpoints(a, b, c); err != nil {
		return Triangle{}, errors.Wrapf(err, "triangle %v", tri.Breakpoints())
	}
	return tri, nil
}

// Evaluate returns degree of membership of x. NaN yields zero.
func (tri Triangle) Evaluate(x float64) float64 {
	return piecewise(x, tri.A, tri.B, tri.B, tri.C)
}

// Kind returns ShapeTriangle
func (tri Triangle) Kind() ShapeKind {
	return ShapeTriangle
}

// Breakpoints returns [A, B, C]
func (tri Triangle) Breakpoints() []float64 {
	return []float64{tri.A, tri.B, tri.C}
}

// piecewise evaluates the trapezoid (a, b, c, d). The plateau check goes first so
// that shoulders (a == b or c == d) evaluate to one at their edge.
func piecewise(x, a, b, c, d float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= b && x <= c:
		return 1
	case x <= a || x >= d:
		return 0
	case x < b:
		return (x - a) / (b - a)
	default:
		return (d - x) / (d - c)
	}
}

func checkBreakpoints(points ...float64) error {
	for i, p := range points {
		if !isFinite(p) {
			return errors.Wrapf(ErrBadBreakpoints, "breakpoint #%d is %v", i, p)
		}
		if i > 0 && points[i-1] > p {
			return errors.Wrapf(ErrBadBreakpoints, "breakpoint #%d (%v) is less than previous one (%v)", i, p, points[i-1])
		}
	}
	return nil
}
