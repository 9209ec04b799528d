package projection

import (
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ProjectedGrid converts coordinates into spherical mercator metres before applying the viewport scale.
// Unlike EquirectangularLocal, the mapping between two points does not depend on the viewport origin,
// so repeated pans and zooms compose without drift.
//
// The origin is drawn at the bottom-left corner of the viewport.
type ProjectedGrid struct{}

func (ProjectedGrid) Name() string {
	return NameProjectedGrid
}

func (ProjectedGrid) Project(vp ownmap.Viewport, point ownmap.GeoCoordinate) ownmap.PlanarPoint {
	origin := toGrid(vp.Origin)
	gridPoint := toGrid(point)

	return ownmap.PlanarPoint{
		X: (gridPoint.X() - origin.X()) * vp.Scale,
		Y: float64(vp.Height) - (gridPoint.Y()-origin.Y())*vp.Scale,
	}
}

func (ProjectedGrid) Unproject(vp ownmap.Viewport, point ownmap.PlanarPoint) ownmap.GeoCoordinate {
	origin := toGrid(vp.Origin)

	gridPoint := orb.Point{
		point.X/vp.Scale + origin.X(),
		(float64(vp.Height)-point.Y)/vp.Scale + origin.Y(),
	}

	return fromGrid(gridPoint)
}

func toGrid(coordinate ownmap.GeoCoordinate) orb.Point {
	return project.WGS84.ToMercator(orb.Point{coordinate.Lon, coordinate.Lat})
}

func fromGrid(point orb.Point) ownmap.GeoCoordinate {
	wgs84Point := project.Mercator.ToWGS84(point)
	return ownmap.GeoCoordinate{
		Lat: wgs84Point.Lat(),
		Lon: wgs84Point.Lon(),
	}
}
