package svgtree

import (
	"strconv"
	"strings"

	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
)

type SerializeOptions struct {
	VisiblePercent float64
}

func DefaultSerializeOptions() SerializeOptions {
	return SerializeOptions{
		VisiblePercent: DefaultVisiblePercent,
	}
}

// Serialize writes the tree as markup for the given viewport.
// Coordinates are projected into scratch space on every call; the tree is not modified.
func Serialize(root Element, vp ownmap.Viewport, proj projection.Projection, options SerializeOptions) string {
	w := &markupWriter{
		viewport:   vp,
		projection: proj,
		options:    options,
	}
	root.writeTo(w)
	return w.sb.String()
}

type markupWriter struct {
	sb         strings.Builder
	viewport   ownmap.Viewport
	projection projection.Projection
	options    SerializeOptions
}

var attributeEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#39;",
)

func (w *markupWriter) writeAttribute(key, value string) {
	w.sb.WriteByte(' ')
	w.sb.WriteString(key)
	w.sb.WriteString(`="`)
	attributeEscaper.WriteString(&w.sb, value)
	w.sb.WriteByte('"')
}

func (w *markupWriter) openTag(name string, attributes attributeList) {
	w.sb.WriteByte('<')
	w.sb.WriteString(name)
	for _, attr := range attributes {
		w.writeAttribute(attr.Key, attr.Value)
	}
}

func (w *markupWriter) selfClose() {
	w.sb.WriteString("/>\n")
}

func (w *markupWriter) writePoints(points []ownmap.PlanarPoint) {
	w.sb.WriteString(` points="`)
	buf := make([]byte, 0, 32)
	for i, point := range points {
		if i != 0 {
			w.sb.WriteByte(' ')
		}
		buf = strconv.AppendFloat(buf[:0], point.X, 'f', 4, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, point.Y, 'f', 4, 64)
		w.sb.Write(buf)
	}
	w.sb.WriteByte('"')
}

func (c *Container) writeTo(w *markupWriter) {
	w.openTag(c.name, c.attributes)
	if c.isRoot {
		w.writeAttribute("width", strconv.Itoa(w.viewport.Width))
		w.writeAttribute("height", strconv.Itoa(w.viewport.Height))
	}

	if len(c.children) == 0 {
		w.selfClose()
		return
	}

	w.sb.WriteByte('>')
	for _, child := range c.children {
		child.writeTo(w)
	}
	w.sb.WriteString("</")
	w.sb.WriteString(c.name)
	w.sb.WriteString(">\n")
}

func (p *Polyline) writeTo(w *markupWriter) {
	points := projection.ProjectAll(w.projection, w.viewport, p.coordinates)
	if !IsVisible(points, w.viewport.Width, w.viewport.Height, w.options.VisiblePercent) {
		return
	}

	w.openTag(p.Name(), p.attributes)
	w.writePoints(points)
	w.selfClose()
}

func (m *Marker) writeTo(w *markupWriter) {
	point := w.projection.Project(w.viewport, m.coordinate)
	if !IsOnScreen([]ownmap.PlanarPoint{point}, w.viewport.Width, w.viewport.Height) {
		return
	}

	w.sb.WriteByte('<')
	w.sb.WriteString(m.Name())
	w.writeAttribute("d", markerPath(point))
	for _, attr := range m.attributes {
		w.writeAttribute(attr.Key, attr.Value)
	}
	w.selfClose()
}

func markerPath(point ownmap.PlanarPoint) string {
	return "M" + formatCoordinate(point.X) + "," + formatCoordinate(point.Y) + " a -15 -25 0 0 1 25 0 l -12 25 z"
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

func (t *Text) writeTo(w *markupWriter) {
	w.sb.WriteString(t.text)
}
