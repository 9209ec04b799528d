package styling

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomBasicStyle_GetWayStyle(t *testing.T) {
	style := &CustomBasicStyle{}

	tests := []struct {
		name          string
		classes       ClassSet
		wantLineColor color.Color
		wantWidth     float64
		wantZIndex    int
	}{
		{"unknown classes get the default style", NewClassSet("amenity", "bench"), defaultWayStyle.LineColor, 1, zindexDefault},
		{"primary beats highway", NewClassSet("highway", "primary"), color.RGBA{0xff, 0xd4, 0xa5, 0xff}, 2.5, zindexMajorRoad},
		{"big highway is wider", NewClassSet("highway", "primary", ClassHighwayBig), color.RGBA{0xff, 0xd4, 0xa5, 0xff}, 4.5, zindexMajorRoad},
		{"river", NewClassSet("waterway", "river"), color.RGBA{0xaa, 0xd3, 0xdf, 0xff}, 2, zindexWaterway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wayStyle := style.GetWayStyle(tt.classes)
			assert.Equal(t, tt.wantLineColor, wayStyle.LineColor)
			assert.Equal(t, tt.wantWidth, wayStyle.LineWidth)
			assert.Equal(t, tt.wantZIndex, wayStyle.GetZIndex())
		})
	}
}

func TestCustomBasicStyle_GetWayStyle_doesNotModifyRules(t *testing.T) {
	style := &CustomBasicStyle{}

	style.GetWayStyle(NewClassSet("highway", "primary", ClassHighwayBig))

	assert.Equal(t, 2.5, style.GetWayStyle(NewClassSet("primary")).LineWidth)
}

func TestCustomBasicStyle_Stylesheet(t *testing.T) {
	stylesheet := (&CustomBasicStyle{}).Stylesheet()

	assert.Contains(t, stylesheet, ".svg { background-color: #ffffff; }\n")
	assert.Contains(t, stylesheet, ".waterway { fill: none; stroke: #aad3df; stroke-width: 2; }\n")
	assert.Contains(t, stylesheet, ".forest { fill: #acc8a0; }\n")
	assert.Contains(t, stylesheet, ".footway { fill: none; stroke: #00ff00; stroke-width: 1; stroke-dasharray: 1 2 3; }\n")
	assert.Contains(t, stylesheet, ".highway_big { stroke-width: 4.5; }\n")
	assert.Contains(t, stylesheet, ".marker { fill: #dd3333; }\n")
}
