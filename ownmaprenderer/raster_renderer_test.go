package ownmaprenderer

import (
	"image"
	"image/color"
	"testing"

	snapshot "github.com/jamesrr39/go-snapshot-testing"
	"github.com/jamesrr39/ownmap-svg/fonts"
	"github.com/jamesrr39/ownmap-svg/ownmap/maprenderer"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/jamesrr39/ownmap-svg/styling"
	"github.com/jamesrr39/ownmap-svg/svgtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ maprenderer.MapRenderer = &RasterRenderer{}

func countNonBackgroundPixels(img image.Image, style styling.Style) int {
	br, bg, bb, ba := style.GetBackground().RGBA()

	var count int
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r != br || g != bg || b != bb || a != ba {
				count++
			}
		}
	}
	return count
}

func TestRasterRenderer_RenderRaster(t *testing.T) {
	style := &styling.CustomBasicStyle{}
	proj := projection.ProjectedGrid{}

	tree, err := newTestRenderer(proj, DefaultRenderOptions()).Build(riverExtract())
	require.NoError(t, err)

	rr := NewRasterRenderer(fonts.DefaultFont(), proj, style, svgtree.DefaultVisiblePercent)

	vp := riverViewport(1.0 / 4)
	img, err := rr.RenderRaster(tree, vp)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 700, 500), img.Bounds())
	assert.Greater(t, countNonBackgroundPixels(img, style), 0)

	// the river runs from the bottom left corner towards the top right, so the top right corner stays empty
	br, bg, bb, _ := style.GetBackground().RGBA()
	r, g, b, _ := img.At(690, 10).RGBA()
	assert.Equal(t, []uint32{br, bg, bb}, []uint32{r, g, b})
}

func TestRasterRenderer_RenderRaster_nothingVisible(t *testing.T) {
	style := &styling.CustomBasicStyle{}
	proj := projection.ProjectedGrid{}

	tree, err := newTestRenderer(proj, DefaultRenderOptions()).Build(riverExtract())
	require.NoError(t, err)

	rr := NewRasterRenderer(fonts.DefaultFont(), proj, style, svgtree.DefaultVisiblePercent)

	img, err := rr.RenderRaster(tree, riverViewport(0.0001))
	require.NoError(t, err)

	expected, err := rr.RenderTextTile(image.Rect(0, 0, 700, 500), "(no data found)")
	require.NoError(t, err)

	assert.Equal(t, expected, img)
}

func TestRasterRenderer_RenderTextTile(t *testing.T) {
	style := &styling.CustomBasicStyle{}
	rr := NewRasterRenderer(fonts.DefaultFont(), projection.ProjectedGrid{}, style, svgtree.DefaultVisiblePercent)

	img, err := rr.RenderTextTile(image.Rect(0, 0, 256, 256), "hello")
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 256, 256), img.Bounds())
	assert.Greater(t, countNonBackgroundPixels(img, style), 0)
}

func TestNewImageWithBackground(t *testing.T) {
	tests := []struct {
		name  string
		size  image.Rectangle
		color color.Color
	}{
		{"white", image.Rect(0, 0, 4, 3), (&styling.CustomBasicStyle{}).GetBackground()},
		{"marker", image.Rect(0, 0, 3, 2), (&styling.CustomBasicStyle{}).GetMarkerColor()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImageWithBackground(tt.size, tt.color)

			snapshot.AssertMatchesSnapshot(t, "NewImageWithBackground_"+tt.name, snapshot.NewImageSnapshot(img))
		})
	}
}
