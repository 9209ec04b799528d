package ownmap

import (
	"github.com/paulmach/osm"
)

// Overlaps checks whether an item is at least partially inside a container
func Overlaps(container osm.Bounds, item osm.Bounds) bool {
	if container.MinLat > item.MaxLat {
		// container is wholly above item
		return false
	}

	if container.MaxLat < item.MinLat {
		// container is wholly below item
		return false
	}

	if container.MinLon > item.MaxLon {
		// container is wholly to the right of item
		return false
	}

	if container.MaxLon < item.MinLon {
		// container is wholly to the left of item
		return false
	}

	return true
}

// IsInBounds tests if a point is inside a container
func IsInBounds(bounds osm.Bounds, point GeoCoordinate) bool {
	isInLatBounds := point.Lat < bounds.MaxLat && point.Lat > bounds.MinLat
	if !isInLatBounds {
		return false
	}

	isInLonBounds := point.Lon < bounds.MaxLon && point.Lon > bounds.MinLon
	if !isInLonBounds {
		return false
	}

	return true
}

// ClampToBounds moves a point that lies outside the bounds onto the nearest edge of the bounds
func ClampToBounds(bounds osm.Bounds, point GeoCoordinate) GeoCoordinate {
	return GeoCoordinate{
		Lat: clamp(point.Lat, bounds.MinLat, bounds.MaxLat),
		Lon: clamp(point.Lon, bounds.MinLon, bounds.MaxLon),
	}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// CalcBounds returns the smallest bounds containing all the points
func CalcBounds(points []GeoCoordinate) osm.Bounds {
	objBounds := osm.Bounds{
		MaxLat: -90,
		MinLat: 90,
		MaxLon: -180,
		MinLon: 180,
	}
	for _, point := range points {
		if point.Lat < objBounds.MinLat {
			objBounds.MinLat = point.Lat
		}
		if point.Lat > objBounds.MaxLat {
			objBounds.MaxLat = point.Lat
		}
		if point.Lon < objBounds.MinLon {
			objBounds.MinLon = point.Lon
		}
		if point.Lon > objBounds.MaxLon {
			objBounds.MaxLon = point.Lon
		}
	}
	return objBounds
}

type TagMap map[string]string

// TagListToTagMap converts OSM tags to a map. If a key is repeated, the last value wins.
func TagListToTagMap(tagList osm.Tags) TagMap {
	if len(tagList) == 0 {
		return nil
	}

	m := make(TagMap)
	for _, tagKVPair := range tagList {
		m[tagKVPair.Key] = tagKVPair.Value
	}

	return m
}
