package fiber

import (
	gomath "math"

	"github.com/Faultbox/tractview/pkg/math"
)

// BBox is an axis-aligned bounding box. An empty box has Min > Max on
// every axis.
type BBox struct {
	Min, Max math.Vec3
}

// EmptyBBox returns a box containing no points.
func EmptyBBox() BBox {
	return BBox{
		Min: math.Vec3{X: gomath.MaxFloat32, Y: gomath.MaxFloat32, Z: gomath.MaxFloat32},
		Max: math.Vec3{X: -gomath.MaxFloat32, Y: -gomath.MaxFloat32, Z: -gomath.MaxFloat32},
	}
}

// IsEmpty reports whether the box contains no points.
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to include p.
func (b *BBox) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the box midpoint.
func (b BBox) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent per axis.
func (b BBox) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Array returns the box as [minX, minY, minZ, maxX, maxY, maxZ].
func (b BBox) Array() [6]float32 {
	return [6]float32{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}
