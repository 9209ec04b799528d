package ownmaprenderer

import (
	"image"
	"image/color"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/jamesrr39/ownmap-svg/styling"
	"github.com/jamesrr39/ownmap-svg/svgtree"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/paulmach/osm"
)

// RasterRenderer draws the same element tree as the SVG renderer, as a PNG-ready image
type RasterRenderer struct {
	font           *truetype.Font
	projection     projection.Projection
	style          styling.Style
	visiblePercent float64
}

func NewRasterRenderer(font *truetype.Font, proj projection.Projection, style styling.Style, visiblePercent float64) *RasterRenderer {
	return &RasterRenderer{
		font,
		proj,
		style,
		visiblePercent,
	}
}

func (rr *RasterRenderer) RenderTextTile(size image.Rectangle, text string) (image.Image, errorsx.Error) {
	img := NewImageWithBackground(size, rr.style.GetBackground())
	x := size.Max.X / 2
	y := size.Max.Y / 2

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(rr.font)
	ctx.SetFontSize(16.0)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))

	_, err := ctx.DrawString(text, freetype.Pt(x, y))
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return img, nil
}

// RenderRaster draws the tree for the viewport, applying the same culling as the markup serializer.
// Elements are drawn in tree order.
func (rr *RasterRenderer) RenderRaster(tree *svgtree.Container, vp ownmap.Viewport) (image.Image, errorsx.Error) {
	size := image.Rect(0, 0, vp.Width, vp.Height)
	viewportBounds := rr.viewportBounds(vp)

	img := NewImageWithBackground(size, rr.style.GetBackground())

	var drawnCount int
	var err errorsx.Error
	tree.Walk(func(element svgtree.Element) {
		if err != nil {
			return
		}

		switch el := element.(type) {
		case *svgtree.Polyline:
			coordinates := el.Coordinates()
			if !ownmap.Overlaps(viewportBounds, ownmap.CalcBounds(coordinates)) {
				return
			}

			points := projection.ProjectAll(rr.projection, vp, coordinates)
			if !svgtree.IsVisible(points, vp.Width, vp.Height, rr.visiblePercent) {
				return
			}

			classes := styling.NewClassSet(strings.Fields(el.Attr("class"))...)
			err = drawWay(img, points, rr.style.GetWayStyle(classes))
			drawnCount++
		case *svgtree.Marker:
			point := rr.projection.Project(vp, el.Coordinate())
			if !svgtree.IsOnScreen([]ownmap.PlanarPoint{point}, vp.Width, vp.Height) {
				return
			}
			err = drawMarker(img, point, rr.style.GetMarkerColor())
			drawnCount++
		}
	})
	if err != nil {
		return nil, err
	}

	if drawnCount == 0 {
		return rr.RenderTextTile(size, "(no data found)")
	}

	return img, nil
}

// viewportBounds returns the geographic area covered by the viewport
func (rr *RasterRenderer) viewportBounds(vp ownmap.Viewport) osm.Bounds {
	return ownmap.CalcBounds([]ownmap.GeoCoordinate{
		rr.projection.Unproject(vp, ownmap.PlanarPoint{X: 0, Y: 0}),
		rr.projection.Unproject(vp, ownmap.PlanarPoint{X: float64(vp.Width), Y: float64(vp.Height)}),
	})
}

func drawWay(img *image.RGBA, points []ownmap.PlanarPoint, lineStyle *styling.WayStyle) errorsx.Error {
	gc := draw2dimg.NewGraphicContext(img)
	defer gc.Close()

	return drawLine(gc, points, lineStyle)
}

func drawLine(gc *draw2dimg.GraphicContext, points []ownmap.PlanarPoint, lineStyle *styling.WayStyle) errorsx.Error {
	if lineStyle.FillColor != nil {
		gc.SetFillColor(lineStyle.FillColor)
	}
	if lineStyle.LineColor != nil {
		gc.SetStrokeColor(lineStyle.LineColor)
	}
	if lineStyle.LineWidth != 0 {
		gc.SetLineWidth(lineStyle.LineWidth)
	}
	if lineStyle.LineDashPolicy != nil {
		gc.SetLineDash(lineStyle.LineDashPolicy, 0)
	}
	gc.BeginPath()

	for i, point := range points {
		if i == 0 {
			gc.MoveTo(point.X, point.Y)
		} else {
			gc.LineTo(point.X, point.Y)
		}
	}
	if lineStyle.FillColor != nil {
		// final line from last point to first
		if len(points) > 0 {
			gc.LineTo(points[0].X, points[0].Y)
		}

		gc.Fill()
	}
	if lineStyle.LineColor != nil {
		gc.Stroke()
	}

	return nil
}

func drawMarker(img *image.RGBA, point ownmap.PlanarPoint, markerColor color.Color) errorsx.Error {
	gc := draw2dimg.NewGraphicContext(img)
	defer gc.Close()

	gc.SetFillColor(markerColor)
	gc.BeginPath()
	gc.MoveTo(point.X, point.Y)
	gc.LineTo(point.X+25, point.Y)
	gc.LineTo(point.X+13, point.Y+25)
	gc.LineTo(point.X, point.Y)
	gc.Fill()

	return nil
}
