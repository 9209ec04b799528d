package projection

import (
	"math"

	"github.com/jamesrr39/ownmap-svg/ownmap"
)

// earthCircumferenceKM is the circumference used for the flat-earth approximation
const earthCircumferenceKM = 40000

// EquirectangularLocal treats latitude/longitude deltas from the origin as kilometre distances on a plane.
// It is only accurate over a small area, such as a single city.
//
// The origin is drawn at (OffsetX, Height/2 - OffsetY).
type EquirectangularLocal struct{}

func (EquirectangularLocal) Name() string {
	return NameEquirectangularLocal
}

func (EquirectangularLocal) Project(vp ownmap.Viewport, point ownmap.GeoCoordinate) ownmap.PlanarPoint {
	avgLatRadians := (vp.Origin.Lat + point.Lat) * math.Pi / 360
	dx := (point.Lon - vp.Origin.Lon) * earthCircumferenceKM * math.Cos(avgLatRadians) / 360
	dy := (point.Lat - vp.Origin.Lat) * earthCircumferenceKM / 360

	return ownmap.PlanarPoint{
		X: dx*vp.Scale + vp.OffsetX,
		Y: float64(vp.Height)/2 - dy*vp.Scale - vp.OffsetY,
	}
}

func (EquirectangularLocal) Unproject(vp ownmap.Viewport, point ownmap.PlanarPoint) ownmap.GeoCoordinate {
	dy := (float64(vp.Height)/2 - point.Y - vp.OffsetY) / vp.Scale
	lat := vp.Origin.Lat + dy*360/earthCircumferenceKM

	// the longitude scale depends on the average latitude, which is known now
	avgLatRadians := (vp.Origin.Lat + lat) * math.Pi / 360
	dx := (point.X - vp.OffsetX) / vp.Scale
	lon := vp.Origin.Lon + dx*360/(earthCircumferenceKM*math.Cos(avgLatRadians))

	return ownmap.GeoCoordinate{Lat: lat, Lon: lon}
}
