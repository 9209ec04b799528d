package svgtree

import (
	"github.com/jamesrr39/ownmap-svg/ownmap"
)

type Attribute struct {
	Key   string
	Value string
}

// Element is a node in the markup tree. The tree is built once and then only read; serializing
// never modifies it, so the same tree can be serialized concurrently for different viewports.
type Element interface {
	Name() string
	writeTo(w *markupWriter)
}

type attributeList []Attribute

func copyAttributes(attributes []Attribute) attributeList {
	return append(attributeList(nil), attributes...)
}

func (a attributeList) get(key string) string {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

// set replaces the value of an existing key in place, keeping insertion order, or appends a new one
func (a attributeList) set(key, value string) attributeList {
	for i, attr := range a {
		if attr.Key == key {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attribute{key, value})
}

// Container is an element with attributes and ordered children, e.g. <svg> or <g>
type Container struct {
	name       string
	attributes attributeList
	children   []Element
	isRoot     bool
}

func NewContainer(name string, attributes ...Attribute) *Container {
	return &Container{name: name, attributes: copyAttributes(attributes)}
}

// NewRoot creates the top-level container. The root is never culled, and gets its width and height from the viewport.
func NewRoot(name string, attributes ...Attribute) *Container {
	return &Container{name: name, attributes: copyAttributes(attributes), isRoot: true}
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) SetAttribute(key, value string) {
	c.attributes = c.attributes.set(key, value)
}

func (c *Container) Attr(key string) string {
	return c.attributes.get(key)
}

func (c *Container) AddChild(child Element) {
	c.children = append(c.children, child)
}

func (c *Container) Children() []Element {
	return c.children
}

// Walk calls fn for every element under the container, depth-first, in insertion order
func (c *Container) Walk(fn func(element Element)) {
	for _, child := range c.children {
		fn(child)
		if container, ok := child.(*Container); ok {
			container.Walk(fn)
		}
	}
}

// Polyline is a line through a sequence of geographic coordinates. The coordinates are projected when serialized.
type Polyline struct {
	attributes  attributeList
	coordinates []ownmap.GeoCoordinate
}

func NewPolyline(coordinates []ownmap.GeoCoordinate, attributes ...Attribute) *Polyline {
	return &Polyline{attributes: copyAttributes(attributes), coordinates: coordinates}
}

func (p *Polyline) Name() string {
	return "polyline"
}

func (p *Polyline) SetAttribute(key, value string) {
	p.attributes = p.attributes.set(key, value)
}

func (p *Polyline) Attr(key string) string {
	return p.attributes.get(key)
}

func (p *Polyline) Coordinates() []ownmap.GeoCoordinate {
	return p.coordinates
}

// Marker is a pin drawn at a single coordinate
type Marker struct {
	attributes attributeList
	coordinate ownmap.GeoCoordinate
}

func NewMarker(coordinate ownmap.GeoCoordinate, attributes ...Attribute) *Marker {
	return &Marker{
		attributes: attributeList{{"class", "marker"}}.merge(attributes),
		coordinate: coordinate,
	}
}

func (a attributeList) merge(other []Attribute) attributeList {
	for _, attr := range other {
		a = a.set(attr.Key, attr.Value)
	}
	return a
}

func (m *Marker) Name() string {
	return "path"
}

func (m *Marker) Attr(key string) string {
	return m.attributes.get(key)
}

func (m *Marker) Coordinate() ownmap.GeoCoordinate {
	return m.coordinate
}

// Text is raw text content, written as-is
type Text struct {
	text string
}

func NewText(text string) *Text {
	return &Text{text}
}

func (t *Text) Name() string {
	return ""
}

func (t *Text) Text() string {
	return t.text
}
