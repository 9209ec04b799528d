package ownmaprenderer

import (
	"sort"
	"strconv"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/jamesrr39/ownmap-svg/styling"
	"github.com/jamesrr39/ownmap-svg/svgtree"
	"github.com/paulmach/osm"
)

type RenderOptions struct {
	// VisiblePercent is the minimum length of a line, as a percentage of the viewport width, for it to be drawn
	VisiblePercent float64
	// EmitMarkers adds a marker for every node carrying a style tag
	EmitMarkers bool
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		VisiblePercent: svgtree.DefaultVisiblePercent,
	}
}

// SVGRenderer builds an element tree from a map extract once, and serializes it for any number of viewports
type SVGRenderer struct {
	logger     *logpkg.Logger
	projection projection.Projection
	style      styling.Style
	options    RenderOptions
}

func NewSVGRenderer(logger *logpkg.Logger, proj projection.Projection, style styling.Style, options RenderOptions) *SVGRenderer {
	return &SVGRenderer{logger, proj, style, options}
}

func (r *SVGRenderer) Projection() projection.Projection {
	return r.projection
}

type polylineWithZIndex struct {
	polyline *svgtree.Polyline
	zIndex   int
}

// Build creates the element tree. Coordinates are stored unprojected.
// Node references that cannot be resolved are dropped from their way; ways left with no coordinates are skipped.
func (r *SVGRenderer) Build(extract *ownmap.MapExtract) (*svgtree.Container, errorsx.Error) {
	bounds, err := extract.BoundsOrError()
	if err != nil {
		return nil, err
	}

	classifier := styling.NewClassifier(r.logger, styling.NewRelationIndex(extract.Relations))

	root := svgtree.NewRoot("svg", svgtree.Attribute{Key: "class", Value: "svg"})

	styleElement := svgtree.NewContainer("style")
	styleElement.AddChild(svgtree.NewText(r.style.Stylesheet()))
	root.AddChild(styleElement)

	var polylines []polylineWithZIndex
	var danglingReferences, skippedWays int
	for _, way := range extract.Ways {
		coordinates := make([]ownmap.GeoCoordinate, 0, len(way.Nodes))
		for _, wayNode := range way.Nodes {
			coordinate, err := extract.ResolveNode(wayNode.ID)
			if err != nil {
				if errorsx.Cause(err) != ownmap.ErrDanglingReference {
					return nil, errorsx.Wrap(err, "way id", way.ID)
				}
				// ways are commonly clipped at the extract boundary
				danglingReferences++
				continue
			}
			coordinates = append(coordinates, coordinate)
		}

		if len(coordinates) == 0 {
			skippedWays++
			continue
		}

		classes := classifier.Classify(way)

		polyline := svgtree.NewPolyline(
			coordinates,
			svgtree.Attribute{Key: "class", Value: classes.String()},
			svgtree.Attribute{Key: "id", Value: strconv.FormatInt(int64(way.ID), 10)},
		)
		polylines = append(polylines, polylineWithZIndex{polyline, r.style.GetWayStyle(classes).GetZIndex()})
	}

	// lowest z-index first, so it is drawn at the bottom
	sort.SliceStable(polylines, func(a, b int) bool {
		return polylines[a].zIndex < polylines[b].zIndex
	})

	for _, p := range polylines {
		root.AddChild(p.polyline)
	}

	var markerCount int
	if r.options.EmitMarkers {
		for _, node := range extract.TaggedNodes {
			if !hasImportantTag(node.Tags) {
				continue
			}
			root.AddChild(svgtree.NewMarker(
				ownmap.GeoCoordinate{Lat: node.Lat, Lon: node.Lon},
				svgtree.Attribute{Key: "id", Value: "n" + strconv.FormatInt(int64(node.ID), 10)},
			))
			markerCount++
		}
	}

	r.logger.Info(
		"built map tree. Bounds (NW, SE): [%f %f, %f %f]. Polylines: %d, markers: %d, skipped ways: %d, dropped node references: %d",
		bounds.MaxLat, bounds.MinLon, bounds.MinLat, bounds.MaxLon,
		len(polylines), markerCount, skippedWays, danglingReferences,
	)

	return root, nil
}

func hasImportantTag(tags osm.Tags) bool {
	for _, tag := range tags {
		if styling.IsImportantTag(tag.Key) {
			return true
		}
	}
	return false
}

// Serialize writes the tree as markup for the viewport. It does not modify the tree and is safe to call concurrently.
func (r *SVGRenderer) Serialize(tree *svgtree.Container, vp ownmap.Viewport) string {
	return svgtree.Serialize(tree, vp, r.projection, svgtree.SerializeOptions{
		VisiblePercent: r.options.VisiblePercent,
	})
}

// CachedTree builds the tree for an extract on first use. The built tree is shared and never modified.
type CachedTree struct {
	renderer *SVGRenderer
	extract  *ownmap.MapExtract

	once sync.Once
	tree *svgtree.Container
	err  errorsx.Error
}

func NewCachedTree(renderer *SVGRenderer, extract *ownmap.MapExtract) *CachedTree {
	return &CachedTree{renderer: renderer, extract: extract}
}

func (c *CachedTree) Tree() (*svgtree.Container, errorsx.Error) {
	c.once.Do(func() {
		c.tree, c.err = c.renderer.Build(c.extract)
	})

	return c.tree, c.err
}

func (c *CachedTree) Extract() *ownmap.MapExtract {
	return c.extract
}
