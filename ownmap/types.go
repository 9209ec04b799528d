package ownmap

import (
	"errors"
)

// ZoomLevel is an index into the scale ladder. Level 1 renders at the base scale, level N at N times the base scale.
type ZoomLevel int

const (
	MinZoomLevel ZoomLevel = 1
	MaxZoomLevel ZoomLevel = 10
)

func (z ZoomLevel) IsValid() bool {
	return z >= MinZoomLevel && z <= MaxZoomLevel
}

var (
	// ErrDanglingReference is returned when a way references a node that is not in the extract
	ErrDanglingReference = errors.New("way references a node not found in the extract")
	// ErrMalformedTag is returned when a tag value cannot be interpreted, e.g. a non-numeric lane count
	ErrMalformedTag = errors.New("malformed tag value")
	// ErrZoomLimit is returned when a gesture would leave the zoom range
	ErrZoomLimit = errors.New("limit of zoom reached")
	// ErrEmptyBounds is returned when the extract has no bounds
	ErrEmptyBounds = errors.New("extract has no bounds")
)

// GeoCoordinate is a WGS84 latitude/longitude pair, in degrees
type GeoCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlanarPoint is a point on the drawing surface. Y grows downwards, so north is up.
type PlanarPoint struct {
	X float64
	Y float64
}

// Viewport is the window currently shown on the drawing surface.
// Viewports are values; navigating produces a new one.
type Viewport struct {
	Zoom    ZoomLevel
	Scale   float64
	Origin  GeoCoordinate
	OffsetX float64
	OffsetY float64
	Width   int
	Height  int
}

// Center returns the pixel in the middle of the viewport
func (vp Viewport) Center() PlanarPoint {
	return PlanarPoint{
		X: float64(vp.Width) / 2,
		Y: float64(vp.Height) / 2,
	}
}

// WithOrigin returns a copy of the viewport with a different geographic origin
func (vp Viewport) WithOrigin(origin GeoCoordinate) Viewport {
	vp.Origin = origin
	return vp
}
