package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
)

type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape selects the exact collision test for a body.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
}

func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

func Rect(width, height float64) Shape {
	return Shape{Kind: ShapeRect, Width: width, Height: height}
}

// HalfExtents returns the half width and half height of the shape's box.
func (s Shape) HalfExtents() (float64, float64) {
	if s.Kind == ShapeRect {
		return s.Width / 2, s.Height / 2
	}
	return s.Radius, s.Radius
}

// Body is the state every simulated entity shares. Position is the center.
type Body struct {
	ID       EntityID
	Pos      cp.Vector
	Vel      cp.Vector
	Shape    Shape
	Layer    Layer
	Active   bool
	Rotation float64
	Alpha    float64
	Scale    float64
}

// AsBody gives embedding types a uniform accessor.
func (b *Body) AsBody() *Body {
	return b
}

// AABB returns the axis-aligned bounds of the body.
func (b *Body) AABB() cp.BB {
	hw, hh := b.Shape.HalfExtents()
	return cp.NewBBForExtents(b.Pos, hw, hh)
}

// SetAlpha stores an opacity clamped to [0, 1].
func (b *Body) SetAlpha(a float64) {
	b.Alpha = common.Clamp01(a)
}

// Radius returns the circle radius, or half the larger rect side.
func (b *Body) Radius() float64 {
	if b.Shape.Kind == ShapeRect {
		hw, hh := b.Shape.HalfExtents()
		if hw > hh {
			return hw
		}
		return hh
	}
	return b.Shape.Radius
}

// Integrate advances the position by velocity over dt milliseconds.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mult(common.Frames(dt)))
}
