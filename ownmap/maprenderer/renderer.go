package maprenderer

import (
	"image"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/svgtree"
)

// MapRenderer draws a built element tree as an image
type MapRenderer interface {
	RenderRaster(tree *svgtree.Container, vp ownmap.Viewport) (image.Image, errorsx.Error)
	RenderTextTile(size image.Rectangle, text string) (image.Image, errorsx.Error)
}
