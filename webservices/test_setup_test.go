package webservices

import (
	"io"
	"testing"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/fonts"
	"github.com/jamesrr39/ownmap-svg/navigation"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/jamesrr39/ownmap-svg/ownmaprenderer"
	"github.com/jamesrr39/ownmap-svg/styling"
	"github.com/jamesrr39/ownmap-svg/svgtree"
	"github.com/paulmach/osm"
)

const (
	testWidth  = 700
	testHeight = 500
)

type testEnv struct {
	logger      *logpkg.Logger
	tree        *ownmaprenderer.CachedTree
	svgRenderer *ownmaprenderer.SVGRenderer
	rasterer    *ownmaprenderer.RasterRenderer
	navigator   *navigation.Navigator
	style       styling.Style
}

func newTestEnv(t *testing.T) *testEnv {
	logger := logpkg.NewLogger(io.Discard, logpkg.LogLevelInfo)
	proj := projection.ProjectedGrid{}
	style := &styling.CustomBasicStyle{}

	bounds := &osm.Bounds{MinLat: 10, MinLon: 10, MaxLat: 10.01, MaxLon: 10.01}
	extract := ownmap.NewMapExtract(&osm.OSM{
		Bounds: bounds,
		Nodes: osm.Nodes{
			{ID: 1, Lat: 10, Lon: 10},
			{ID: 2, Lat: 10.005, Lon: 10.005},
			{ID: 3, Lat: 10.009, Lon: 10.001},
		},
		Ways: osm.Ways{
			{ID: 1, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}}, Tags: osm.Tags{{Key: "waterway", Value: "river"}}},
			{ID: 2, Nodes: osm.WayNodes{{ID: 2}, {ID: 3}}, Tags: osm.Tags{{Key: "highway", Value: "primary"}}},
		},
	})

	svgRenderer := ownmaprenderer.NewSVGRenderer(logger, proj, style, ownmaprenderer.DefaultRenderOptions())

	return &testEnv{
		logger:      logger,
		tree:        ownmaprenderer.NewCachedTree(svgRenderer, extract),
		svgRenderer: svgRenderer,
		rasterer:    ownmaprenderer.NewRasterRenderer(fonts.DefaultFont(), proj, style, svgtree.DefaultVisiblePercent),
		navigator:   navigation.NewNavigator(proj, projection.DefaultBaseScale(proj.Name()), bounds),
		style:       style,
	}
}
