package svgtree

import (
	"sync"
	"testing"

	snapshot "github.com/jamesrr39/go-snapshot-testing"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/stretchr/testify/assert"
)

// pixelProjection treats longitude as x and latitude as y, shifted by the viewport origin
type pixelProjection struct{}

func (pixelProjection) Name() string {
	return "pixel"
}

func (pixelProjection) Project(vp ownmap.Viewport, point ownmap.GeoCoordinate) ownmap.PlanarPoint {
	return ownmap.PlanarPoint{X: point.Lon - vp.Origin.Lon, Y: point.Lat - vp.Origin.Lat}
}

func (pixelProjection) Unproject(vp ownmap.Viewport, point ownmap.PlanarPoint) ownmap.GeoCoordinate {
	return ownmap.GeoCoordinate{Lat: point.Y + vp.Origin.Lat, Lon: point.X + vp.Origin.Lon}
}

var testViewport = ownmap.Viewport{Zoom: 1, Scale: 1, Width: 700, Height: 500}

func serialize(root Element, vp ownmap.Viewport) string {
	return Serialize(root, vp, pixelProjection{}, DefaultSerializeOptions())
}

func TestSerialize(t *testing.T) {
	root := NewRoot("svg", Attribute{"class", "svg"})
	style := NewContainer("style")
	style.AddChild(NewText(".a { fill: none; }"))
	root.AddChild(style)
	root.AddChild(NewPolyline(
		[]ownmap.GeoCoordinate{{Lat: 10, Lon: 10}, {Lat: 10, Lon: 110.123456}},
		Attribute{"class", "highway primary"},
		Attribute{"id", "42"},
	))
	// too small to be drawn
	root.AddChild(NewPolyline(
		[]ownmap.GeoCoordinate{{Lat: 10, Lon: 10}, {Lat: 10, Lon: 11}},
		Attribute{"id", "43"},
	))
	root.AddChild(NewContainer("g"))

	snapshot.AssertMatchesSnapshot(t, "TestSerialize", snapshot.NewTextSnapshot(serialize(root, testViewport)))
}

func TestSerialize_emptyRoot(t *testing.T) {
	root := NewRoot("svg", Attribute{"class", "svg"})

	assert.Equal(t, "<svg class=\"svg\" width=\"700\" height=\"500\"/>\n", serialize(root, testViewport))
}

func TestSerialize_rootIsNeverCulled(t *testing.T) {
	root := NewRoot("svg")
	root.AddChild(NewPolyline([]ownmap.GeoCoordinate{{Lat: -100, Lon: -100}, {Lat: -100, Lon: 1000}}))

	assert.Equal(t, "<svg width=\"700\" height=\"500\"></svg>\n", serialize(root, testViewport))
}

func TestSerialize_escapesAttributes(t *testing.T) {
	root := NewRoot("svg")
	root.AddChild(NewContainer("g", Attribute{"class", `a"b<c>&d`}))

	assert.Equal(t, "<svg width=\"700\" height=\"500\"><g class=\"a&quot;b&lt;c&gt;&amp;d\"/>\n</svg>\n", serialize(root, testViewport))
}

func TestSerialize_marker(t *testing.T) {
	root := NewRoot("svg")
	root.AddChild(NewMarker(ownmap.GeoCoordinate{Lat: 20, Lon: 30}, Attribute{"id", "n1"}))
	// off screen
	root.AddChild(NewMarker(ownmap.GeoCoordinate{Lat: -20, Lon: 30}, Attribute{"id", "n2"}))

	snapshot.AssertMatchesSnapshot(t, "TestSerialize_marker", snapshot.NewTextSnapshot(serialize(root, testViewport)))
}

func TestSerialize_isIdempotentAndDoesNotModifyTree(t *testing.T) {
	coordinates := []ownmap.GeoCoordinate{{Lat: 10, Lon: 10}, {Lat: 200, Lon: 300}}
	polyline := NewPolyline(coordinates, Attribute{"id", "1"})
	root := NewRoot("svg")
	root.AddChild(polyline)

	first := serialize(root, testViewport)
	second := serialize(root, testViewport)
	assert.Equal(t, first, second)

	moved := testViewport.WithOrigin(ownmap.GeoCoordinate{Lat: 5, Lon: 5})
	assert.NotEqual(t, first, serialize(root, moved))

	assert.Equal(t, []ownmap.GeoCoordinate{{Lat: 10, Lon: 10}, {Lat: 200, Lon: 300}}, polyline.Coordinates())
	assert.Equal(t, first, serialize(root, testViewport))
}

func TestSerialize_concurrentViewports(t *testing.T) {
	root := NewRoot("svg")
	root.AddChild(NewPolyline([]ownmap.GeoCoordinate{{Lat: 10, Lon: 10}, {Lat: 200, Lon: 300}}))

	viewports := []ownmap.Viewport{
		testViewport,
		testViewport.WithOrigin(ownmap.GeoCoordinate{Lat: 5, Lon: 5}),
		testViewport.WithOrigin(ownmap.GeoCoordinate{Lat: -5, Lon: 1}),
	}
	var expected []string
	for _, vp := range viewports {
		expected = append(expected, serialize(root, vp))
	}

	var wg sync.WaitGroup
	results := make([]string, len(viewports)*10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = serialize(root, viewports[i%len(viewports)])
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		assert.Equal(t, expected[i%len(viewports)], result)
	}
}

func TestContainer_SetAttribute(t *testing.T) {
	c := NewContainer("g", Attribute{"class", "a"}, Attribute{"id", "1"})
	c.SetAttribute("class", "b")
	c.SetAttribute("style", "x")

	assert.Equal(t, "b", c.Attr("class"))
	assert.Equal(t, "<g class=\"b\" id=\"1\" style=\"x\"/>\n", serialize(c, testViewport))
}

func TestContainer_Walk(t *testing.T) {
	root := NewRoot("svg")
	group := NewContainer("g")
	group.AddChild(NewText("a"))
	root.AddChild(group)
	root.AddChild(NewPolyline(nil))

	var names []string
	root.Walk(func(element Element) {
		names = append(names, element.Name())
	})

	assert.Equal(t, []string{"g", "", "polyline"}, names)
}
