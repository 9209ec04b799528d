package styling

import (
	"fmt"
	"image/color"
	"strings"
)

type CustomBasicStyle struct{}

func (_ *CustomBasicStyle) GetBackground() color.Color {
	return color.White
}

func (_ *CustomBasicStyle) GetMarkerColor() color.Color {
	return color.RGBA{0xdd, 0x33, 0x33, 0xff}
}

func (_ *CustomBasicStyle) GetStyleID() string {
	return BUILTIN_STYLEID
}

const (
	zindexDefault     = 1
	zindexLanduse     = 2
	zindexForest      = 3
	zindexBuilding    = 4
	zindexWaterway    = 5
	zindexRailway     = 6
	zindexHighway     = 7
	zindexMajorRoad   = 8
	zindexNationalWay = 9
)

type classRule struct {
	Class string
	Style *WayStyle
}

var defaultWayStyle = &WayStyle{
	LineColor: color.RGBA{0xbb, 0xbb, 0xbb, 0xff},
	LineWidth: 1,
	ZIndex:    zindexDefault,
}

var forestStyle = &WayStyle{
	FillColor: color.RGBA{172, 200, 160, 0xff},
	ZIndex:    zindexForest,
}

// rules are ordered by z-index, so that in the stylesheet a later (higher) rule wins, the same as when drawing
var basicStyleRules = []classRule{
	{"landuse", &WayStyle{FillColor: color.RGBA{223, 223, 223, 0xff}, ZIndex: zindexLanduse}},
	{"leisure", &WayStyle{FillColor: color.RGBA{0xc8, 0xfa, 0xcc, 0xff}, ZIndex: zindexLanduse}},
	{"forest", forestStyle},
	{"wood", forestStyle},
	{"building", &WayStyle{FillColor: color.RGBA{0xd9, 0xd0, 0xc9, 0xff}, LineColor: color.RGBA{0xc4, 0xb6, 0xab, 0xff}, LineWidth: 1, ZIndex: zindexBuilding}},
	{"waterway", &WayStyle{LineColor: color.RGBA{0xaa, 0xd3, 0xdf, 0xff}, LineWidth: 2, ZIndex: zindexWaterway}},
	{"power", &WayStyle{LineColor: color.RGBA{0x88, 0x88, 0x88, 0xff}, LineWidth: 1, LineDashPolicy: []float64{4, 2}, ZIndex: zindexRailway}},
	{"highway", &WayStyle{LineColor: color.RGBA{0xbc, 0xac, 0xa5, 0xff}, LineWidth: 1.5, ZIndex: zindexHighway}},
	{"footway", &WayStyle{LineColor: color.RGBA{0, 0xff, 0, 0xff}, LineWidth: 1, LineDashPolicy: []float64{1, 2, 3}, ZIndex: zindexHighway}},
	{"cycleway", &WayStyle{LineColor: color.RGBA{0, 0xff, 0, 0xff}, LineWidth: 1, LineDashPolicy: []float64{20, 5}, ZIndex: zindexHighway}},
	{"tertiary", &WayStyle{LineColor: color.RGBA{0xf3, 0x8d, 0x9e, 0xff}, LineWidth: 2, ZIndex: zindexMajorRoad}},
	{"secondary", &WayStyle{LineColor: color.RGBA{0xf6, 0xf9, 0xbf, 0xff}, LineWidth: 2, ZIndex: zindexMajorRoad}},
	{"primary", &WayStyle{LineColor: color.RGBA{0xff, 0xd4, 0xa5, 0xff}, LineWidth: 2.5, ZIndex: zindexMajorRoad}},
	{"trunk", &WayStyle{LineColor: color.RGBA{0xff, 0xae, 0x9b, 0xff}, LineWidth: 3, ZIndex: zindexMajorRoad}},
	{"motorway", &WayStyle{LineColor: color.RGBA{0xf3, 0x8d, 0x9e, 0xff}, LineWidth: 3, ZIndex: zindexMajorRoad}},
	{"national_way", &WayStyle{LineColor: color.RGBA{0xe8, 0x92, 0xa2, 0xff}, ZIndex: zindexNationalWay}},
}

var laneWidths = []struct {
	Class string
	Width float64
}{
	{ClassHighwayMiddle, 3},
	{ClassHighwayBig, 4.5},
}

// GetWayStyle picks the highest z-index rule matching the classes. Lane classes then widen the line.
func (_ *CustomBasicStyle) GetWayStyle(classes ClassSet) *WayStyle {
	chosen := defaultWayStyle
	for _, rule := range basicStyleRules {
		if classes.Has(rule.Class) && rule.Style.ZIndex >= chosen.ZIndex {
			chosen = rule.Style
		}
	}

	wayStyle := *chosen
	if chosen.LineColor == nil && chosen.FillColor == nil {
		wayStyle.LineColor = defaultWayStyle.LineColor
	}
	for _, laneWidth := range laneWidths {
		if classes.Has(laneWidth.Class) {
			wayStyle.LineWidth = laneWidth.Width
		}
	}

	return &wayStyle
}

func (s *CustomBasicStyle) Stylesheet() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, ".svg { background-color: %s; }\n", cssColor(s.GetBackground()))
	fmt.Fprintf(&sb, "polyline { %s }\n", cssDeclarations(defaultWayStyle))
	for _, rule := range basicStyleRules {
		fmt.Fprintf(&sb, ".%s { %s }\n", rule.Class, cssDeclarations(rule.Style))
	}
	for _, laneWidth := range laneWidths {
		fmt.Fprintf(&sb, ".%s { stroke-width: %g; }\n", laneWidth.Class, laneWidth.Width)
	}
	fmt.Fprintf(&sb, ".marker { fill: %s; }\n", cssColor(s.GetMarkerColor()))

	return sb.String()
}

func cssDeclarations(ws *WayStyle) string {
	var declarations []string
	if ws.FillColor != nil {
		declarations = append(declarations, fmt.Sprintf("fill: %s;", cssColor(ws.FillColor)))
	} else {
		declarations = append(declarations, "fill: none;")
	}
	if ws.LineColor != nil {
		declarations = append(declarations, fmt.Sprintf("stroke: %s;", cssColor(ws.LineColor)))
	}
	if ws.LineWidth != 0 {
		declarations = append(declarations, fmt.Sprintf("stroke-width: %g;", ws.LineWidth))
	}
	if len(ws.LineDashPolicy) != 0 {
		var dashes []string
		for _, dash := range ws.LineDashPolicy {
			dashes = append(dashes, fmt.Sprintf("%g", dash))
		}
		declarations = append(declarations, fmt.Sprintf("stroke-dasharray: %s;", strings.Join(dashes, " ")))
	}

	return strings.Join(declarations, " ")
}

func cssColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
