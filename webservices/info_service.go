package webservices

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/navigation"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmaprenderer"
	"github.com/jamesrr39/ownmap-svg/styling"
	"github.com/paulmach/osm"
)

func NewInfoService(logger *logpkg.Logger, tree *ownmaprenderer.CachedTree, navigator *navigation.Navigator, style styling.Style) *InfoService {
	ws := &InfoService{logger, tree, navigator, style, chi.NewRouter()}
	ws.Get("/", ws.handleGet)

	return ws
}

type InfoService struct {
	logger    *logpkg.Logger
	tree      *ownmaprenderer.CachedTree
	navigator *navigation.Navigator
	style     styling.Style
	chi.Router
}

type extractInfoType struct {
	Bounds          *osm.Bounds `json:"bounds"`
	NodeCount       int         `json:"nodeCount"`
	TaggedNodeCount int         `json:"taggedNodeCount"`
	WayCount        int         `json:"wayCount"`
	RelationCount   int         `json:"relationCount"`
}

type zoomInfoType struct {
	Min       ownmap.ZoomLevel `json:"min"`
	Max       ownmap.ZoomLevel `json:"max"`
	BaseScale float64          `json:"baseScale"`
}

type infoType struct {
	Extract    extractInfoType `json:"extract"`
	Projection string          `json:"projection"`
	Zoom       zoomInfoType    `json:"zoom"`
	StyleID    string          `json:"styleId"`
}

func (ws *InfoService) handleGet(w http.ResponseWriter, r *http.Request) {
	extract := ws.tree.Extract()

	render.JSON(w, r, infoType{
		Extract: extractInfoType{
			Bounds:          extract.Bounds,
			NodeCount:       len(extract.Nodes),
			TaggedNodeCount: len(extract.TaggedNodes),
			WayCount:        len(extract.Ways),
			RelationCount:   len(extract.Relations),
		},
		Projection: ws.navigator.Projection.Name(),
		Zoom: zoomInfoType{
			Min:       ownmap.MinZoomLevel,
			Max:       ownmap.MaxZoomLevel,
			BaseScale: ws.navigator.BaseScale,
		},
		StyleID: ws.style.GetStyleID(),
	})
}
