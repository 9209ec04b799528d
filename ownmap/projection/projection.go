package projection

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-svg/ownmap"
)

// Projection maps geographic coordinates onto the drawing surface of a viewport and back again.
// A session must use the same Projection for rendering and navigating.
type Projection interface {
	Name() string
	Project(vp ownmap.Viewport, point ownmap.GeoCoordinate) ownmap.PlanarPoint
	Unproject(vp ownmap.Viewport, point ownmap.PlanarPoint) ownmap.GeoCoordinate
}

const (
	NameProjectedGrid        = "grid"
	NameEquirectangularLocal = "equirectangular"
)

func ByName(name string) (Projection, errorsx.Error) {
	switch name {
	case NameProjectedGrid:
		return ProjectedGrid{}, nil
	case NameEquirectangularLocal:
		return EquirectangularLocal{}, nil
	default:
		return nil, errorsx.Errorf("unknown projection: %q. Known projections: %q, %q", name, NameProjectedGrid, NameEquirectangularLocal)
	}
}

// ProjectAll projects every point into a new slice
func ProjectAll(p Projection, vp ownmap.Viewport, points []ownmap.GeoCoordinate) []ownmap.PlanarPoint {
	projected := make([]ownmap.PlanarPoint, len(points))
	for i, point := range points {
		projected[i] = p.Project(vp, point)
	}
	return projected
}

// DefaultBaseScale returns the scale of the lowest zoom level for a projection, 1/20 pixel per metre.
// The projected grid works in metres, the local equirectangular projection in kilometres.
func DefaultBaseScale(name string) float64 {
	if name == NameEquirectangularLocal {
		return 50
	}
	return 1.0 / 20
}
