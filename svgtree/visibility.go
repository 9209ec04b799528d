package svgtree

import (
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultVisiblePercent is the default minimum stroke length, as a percentage of the viewport width, for a line to be drawn
const DefaultVisiblePercent = 3

// IsVisible decides whether a projected line is worth drawing.
// At least one point must be strictly inside the viewport, and the length of the line must be at least
// visiblePercent of the viewport width. This culls lines that are off-screen or too small to see at the current scale;
// it is not a clip, a long line passing across the viewport without a point inside it is culled too.
func IsVisible(points []ownmap.PlanarPoint, width, height int, visiblePercent float64) bool {
	if !IsOnScreen(points, width, height) {
		return false
	}

	return StrokeSizePercent(points, width) >= visiblePercent
}

// IsOnScreen returns true if at least one point lies strictly inside the viewport
func IsOnScreen(points []ownmap.PlanarPoint, width, height int) bool {
	for _, point := range points {
		if point.X > 0 && point.X < float64(width) && point.Y > 0 && point.Y < float64(height) {
			return true
		}
	}
	return false
}

// StrokeSizePercent returns the length of the line as a percentage of the viewport width
func StrokeSizePercent(points []ownmap.PlanarPoint, width int) float64 {
	return Perimeter(points) / float64(width) * 100
}

// Perimeter returns the sum of the lengths of the segments of the line
func Perimeter(points []ownmap.PlanarPoint) float64 {
	lineString := make(orb.LineString, len(points))
	for i, point := range points {
		lineString[i] = orb.Point{point.X, point.Y}
	}

	return planar.Length(lineString)
}
