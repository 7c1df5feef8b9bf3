package geometry

import "math"

// DefaultSnapTolerance is how close (in canvas units) an edge must be to a
// guide before it snaps.
const DefaultSnapTolerance = 5

// Orientation distinguishes vertical and horizontal guides.
type Orientation uint8

const (
	// Vertical guides constrain X.
	Vertical Orientation = iota

	// Horizontal guides constrain Y.
	Horizontal
)

// Guide is an alignment line the moving element snapped to.
type Guide struct {
	Orientation Orientation

	// Pos is the guide's coordinate on its constrained axis.
	Pos float64
}

// SnapResult is the outcome of a snap computation.
type SnapResult struct {
	// X, Y is the adjusted top-left position of the moving rect.
	X, Y float64

	// SnappedX and SnappedY report which axes were adjusted.
	SnappedX, SnappedY bool

	// Guides are the alignment lines hit, for the render layer to draw.
	Guides []Guide
}

// Snap aligns a moving rect against its siblings' edges and centers.
//
// For each axis independently, the candidate guide with the smallest
// distance within tolerance wins. Ties prefer the earlier sibling. When no
// guide is within tolerance the axis keeps its input position.
func Snap(moving Rect, siblings []Rect, tolerance float64) SnapResult {
	if tolerance <= 0 {
		tolerance = DefaultSnapTolerance
	}

	res := SnapResult{X: moving.X, Y: moving.Y}

	bestDX := tolerance + 1
	bestDY := tolerance + 1
	var bestXGuide, bestYGuide Guide

	for _, sib := range siblings {
		for _, gx := range []float64{sib.Left(), sib.CenterX(), sib.Right()} {
			for _, mx := range []float64{moving.Left(), moving.CenterX(), moving.Right()} {
				d := math.Abs(gx - mx)
				if d <= tolerance && d < bestDX {
					bestDX = d
					bestXGuide = Guide{Orientation: Vertical, Pos: gx}
					res.X = moving.X + (gx - mx)
				}
			}
		}
		for _, gy := range []float64{sib.Top(), sib.CenterY(), sib.Bottom()} {
			for _, my := range []float64{moving.Top(), moving.CenterY(), moving.Bottom()} {
				d := math.Abs(gy - my)
				if d <= tolerance && d < bestDY {
					bestDY = d
					bestYGuide = Guide{Orientation: Horizontal, Pos: gy}
					res.Y = moving.Y + (gy - my)
				}
			}
		}
	}

	if bestDX <= tolerance {
		res.SnappedX = true
		res.Guides = append(res.Guides, bestXGuide)
	}
	if bestDY <= tolerance {
		res.SnappedY = true
		res.Guides = append(res.Guides, bestYGuide)
	}
	return res
}

// SnapAngle snaps an angle (degrees) to the nearest multiple of step when
// within tolerance. Angles are normalized to [0, 360).
func SnapAngle(angle, step, tolerance float64) float64 {
	normalized := math.Mod(angle, 360)
	if normalized < 0 {
		normalized += 360
	}
	if step <= 0 {
		return normalized
	}

	nearest := math.Round(normalized/step) * step
	if math.Abs(nearest-normalized) <= tolerance {
		return math.Mod(nearest, 360)
	}
	return normalized
}
