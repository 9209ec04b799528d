package navigation

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/paulmach/osm"
)

// Gesture is a user interaction with the map
type Gesture struct {
	// ZoomDelta is the number of zoom levels to move by. Negative values zoom out.
	ZoomDelta int
	// PanX and PanY are the pixel displacement of the focus from the viewport centre
	PanX float64
	PanY float64
	// PreferredGeo overrides the focus derived from the pan
	PreferredGeo *ownmap.GeoCoordinate
}

// Navigator computes viewports. It holds no session state; the caller keeps the previous viewport.
type Navigator struct {
	Projection projection.Projection
	BaseScale  float64
	// Bounds limits where the focus can be. May be nil.
	Bounds *osm.Bounds
}

func NewNavigator(proj projection.Projection, baseScale float64, bounds *osm.Bounds) *Navigator {
	return &Navigator{proj, baseScale, bounds}
}

// ScaleForLevel returns the scale of a zoom level
func (n *Navigator) ScaleForLevel(level ownmap.ZoomLevel) float64 {
	return n.BaseScale * float64(level)
}

// DefaultViewport is the first viewport of a session: the lowest zoom level, with the bounds minimum as origin
func (n *Navigator) DefaultViewport(width, height int) ownmap.Viewport {
	vp := ownmap.Viewport{
		Zoom:   ownmap.MinZoomLevel,
		Scale:  n.ScaleForLevel(ownmap.MinZoomLevel),
		Width:  width,
		Height: height,
	}

	if n.Bounds != nil {
		vp.Origin = ownmap.GeoCoordinate{Lat: n.Bounds.MinLat, Lon: n.Bounds.MinLon}
	}

	return vp
}

// CenteredViewport returns a viewport at the zoom level whose centre pixel shows the focus.
// The focus is clamped to the bounds first.
func (n *Navigator) CenteredViewport(focus ownmap.GeoCoordinate, level ownmap.ZoomLevel, width, height int) (ownmap.Viewport, errorsx.Error) {
	if !level.IsValid() {
		return ownmap.Viewport{}, errorsx.Wrap(ownmap.ErrZoomLimit, "zoom", level)
	}

	vp := ownmap.Viewport{
		Zoom:   level,
		Scale:  n.ScaleForLevel(level),
		Width:  width,
		Height: height,
	}

	return n.centerOn(vp, n.clamp(focus)), nil
}

// NextViewport applies a gesture to the previous viewport.
// If the new zoom level is out of range, the previous viewport is returned with ErrZoomLimit.
func (n *Navigator) NextViewport(prev ownmap.Viewport, g Gesture) (ownmap.Viewport, errorsx.Error) {
	level := prev.Zoom + ownmap.ZoomLevel(g.ZoomDelta)
	if !level.IsValid() {
		return prev, errorsx.Wrap(ownmap.ErrZoomLimit, "zoom", level)
	}

	var focus ownmap.GeoCoordinate
	if g.PreferredGeo != nil {
		focus = *g.PreferredGeo
	} else {
		center := prev.Center()
		focus = n.Projection.Unproject(prev, ownmap.PlanarPoint{
			X: center.X + g.PanX,
			Y: center.Y + g.PanY,
		})
	}

	next := prev
	next.Zoom = level
	next.Scale = n.ScaleForLevel(level)

	return n.centerOn(next, n.clamp(focus)), nil
}

func (n *Navigator) clamp(focus ownmap.GeoCoordinate) ownmap.GeoCoordinate {
	if n.Bounds == nil {
		return focus
	}

	return ownmap.ClampToBounds(*n.Bounds, focus)
}

// centerOn moves the origin so that the focus projects to the centre pixel.
// With the focus as origin it projects to p; moving the origin to the point at 2p-c shifts it by c-p.
func (n *Navigator) centerOn(vp ownmap.Viewport, focus ownmap.GeoCoordinate) ownmap.Viewport {
	atFocus := vp.WithOrigin(focus)
	p := n.Projection.Project(atFocus, focus)
	c := vp.Center()

	origin := n.Projection.Unproject(atFocus, ownmap.PlanarPoint{
		X: 2*p.X - c.X,
		Y: 2*p.Y - c.Y,
	})

	return vp.WithOrigin(origin)
}
