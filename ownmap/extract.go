package ownmap

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/paulmach/osm"
)

// MapExtract is a read-only view over a parsed map extract. Everything is indexed when the extract is created.
type MapExtract struct {
	Bounds      *osm.Bounds
	Nodes       map[osm.NodeID]GeoCoordinate
	TaggedNodes []*osm.Node
	Ways        []*osm.Way
	Relations   []*osm.Relation
}

// NewMapExtract indexes a decoded OSM document
func NewMapExtract(o *osm.OSM) *MapExtract {
	builder := NewExtractBuilder(o.Bounds)
	for _, node := range o.Nodes {
		builder.Add(node)
	}
	for _, way := range o.Ways {
		builder.Add(way)
	}
	for _, relation := range o.Relations {
		builder.Add(relation)
	}

	return builder.Build()
}

// ExtractBuilder collects objects from a streaming source, such as a PBF scanner, into a MapExtract
type ExtractBuilder struct {
	extract *MapExtract
}

func NewExtractBuilder(bounds *osm.Bounds) *ExtractBuilder {
	return &ExtractBuilder{
		extract: &MapExtract{
			Bounds: bounds,
			Nodes:  make(map[osm.NodeID]GeoCoordinate),
		},
	}
}

// Add adds a node, way or relation. Other object types are ignored.
func (b *ExtractBuilder) Add(object osm.Object) {
	switch obj := object.(type) {
	case *osm.Node:
		b.extract.Nodes[obj.ID] = GeoCoordinate{Lat: obj.Lat, Lon: obj.Lon}
		if len(obj.Tags) != 0 {
			b.extract.TaggedNodes = append(b.extract.TaggedNodes, obj)
		}
	case *osm.Way:
		b.extract.Ways = append(b.extract.Ways, obj)
	case *osm.Relation:
		b.extract.Relations = append(b.extract.Relations, obj)
	}
}

func (b *ExtractBuilder) Build() *MapExtract {
	return b.extract
}

// ResolveNode returns the coordinate of a node referenced by a way
func (e *MapExtract) ResolveNode(id osm.NodeID) (GeoCoordinate, errorsx.Error) {
	coordinate, ok := e.Nodes[id]
	if !ok {
		return GeoCoordinate{}, errorsx.Wrap(ErrDanglingReference, "node id", id)
	}

	return coordinate, nil
}

// BoundsOrError returns the extract bounds, or ErrEmptyBounds if the source had none
func (e *MapExtract) BoundsOrError() (osm.Bounds, errorsx.Error) {
	if e.Bounds == nil {
		return osm.Bounds{}, errorsx.Wrap(ErrEmptyBounds)
	}

	return *e.Bounds, nil
}
