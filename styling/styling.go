package styling

import (
	"image/color"
	"sort"
	"strings"
)

const BUILTIN_STYLEID = "__ownmap_builtin"

// ClassSet is the set of style classes attached to a rendered element
type ClassSet map[string]struct{}

func NewClassSet(classes ...string) ClassSet {
	set := make(ClassSet)
	for _, class := range classes {
		set.Add(class)
	}
	return set
}

func (s ClassSet) Add(class string) {
	if class == "" {
		return
	}
	s[class] = struct{}{}
}

func (s ClassSet) Has(class string) bool {
	_, ok := s[class]
	return ok
}

// Sorted returns the classes in alphabetical order
func (s ClassSet) Sorted() []string {
	classes := make([]string, 0, len(s))
	for class := range s {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// String returns the classes in the form used by the markup "class" attribute
func (s ClassSet) String() string {
	return strings.Join(s.Sorted(), " ")
}

type WayStyle struct {
	FillColor      color.Color
	LineColor      color.Color
	LineDashPolicy []float64
	LineWidth      float64
	ZIndex         int
}

func (ws *WayStyle) GetZIndex() int {
	return ws.ZIndex
}

type Style interface {
	// GetWayStyle returns the style for an element with the given classes
	GetWayStyle(classes ClassSet) *WayStyle
	GetMarkerColor() color.Color
	GetBackground() color.Color
	GetStyleID() string
	// Stylesheet returns CSS rules for the classes the style knows about
	Stylesheet() string
}
