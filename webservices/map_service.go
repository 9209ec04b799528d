package webservices

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/navigation"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmaprenderer"
)

//go:embed templates/index.html
var indexTemplateText string

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateText))

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// MapService serves the interactive map page, and the zoom requests made by it
type MapService struct {
	logger    *logpkg.Logger
	tree      *ownmaprenderer.CachedTree
	renderer  *ownmaprenderer.SVGRenderer
	navigator *navigation.Navigator
	width     int
	height    int
	chi.Router
}

func NewMapService(logger *logpkg.Logger, tree *ownmaprenderer.CachedTree, renderer *ownmaprenderer.SVGRenderer, navigator *navigation.Navigator, width, height int) *MapService {
	ms := &MapService{logger, tree, renderer, navigator, width, height, chi.NewRouter()}

	ms.Get("/", ms.handleGetPage)
	ms.Post("/zoom", ms.handlePostZoom)

	return ms
}

type indexPageData struct {
	SVGContent template.HTML
	Latitude   float64
	Longitude  float64
	Zoom       ownmap.ZoomLevel
}

func (ms *MapService) handleGetPage(w http.ResponseWriter, r *http.Request) {
	vp := ms.navigator.DefaultViewport(ms.width, ms.height)

	svgContent, err := ms.serialize(r, vp)
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templateErr := indexTemplate.Execute(w, indexPageData{
		// markup is generated by the serializer, which escapes every attribute value
		SVGContent: template.HTML(svgContent),
		Latitude:   vp.Origin.Lat,
		Longitude:  vp.Origin.Lon,
		Zoom:       vp.Zoom,
	})
	if templateErr != nil {
		ms.logger.Error("failed to write index page. Error: %q", templateErr)
	}
}

// zoomRequest is sent when the map is double clicked.
// X and Y are the latitude and longitude of the current viewport origin; OffsetX and OffsetY are the click position in pixels.
type zoomRequest struct {
	Zoom           ownmap.ZoomLevel `json:"zoom"`
	X              *float64         `json:"x"`
	Y              *float64         `json:"y"`
	OffsetX        float64          `json:"offset_x"`
	OffsetY        float64          `json:"offset_y"`
	IsIncreasedMap bool             `json:"is_increased_map"`
}

type zoomResponse struct {
	X          float64          `json:"x"`
	Y          float64          `json:"y"`
	Zoom       ownmap.ZoomLevel `json:"zoom"`
	SVGContent string           `json:"svg_content"`
	Status     string           `json:"status"`
	Message    string           `json:"message"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (ms *MapService) handlePostZoom(w http.ResponseWriter, r *http.Request) {
	req := zoomRequest{
		Zoom:           ownmap.MinZoomLevel,
		IsIncreasedMap: true,
	}
	err := render.DecodeJSON(r.Body, &req)
	if err != nil {
		errorsx.HTTPJSONError(w, ms.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}

	if !req.Zoom.IsValid() {
		errorsx.HTTPJSONError(w, ms.logger, errorsx.Errorf("current zoom %d is outside the range %d to %d", req.Zoom, ownmap.MinZoomLevel, ownmap.MaxZoomLevel), http.StatusBadRequest)
		return
	}

	prev := ms.navigator.DefaultViewport(ms.width, ms.height)
	prev.Zoom = req.Zoom
	prev.Scale = ms.navigator.ScaleForLevel(req.Zoom)
	if req.X != nil && req.Y != nil {
		prev.Origin = ownmap.GeoCoordinate{Lat: *req.X, Lon: *req.Y}
	}

	zoomDelta := 1
	if !req.IsIncreasedMap {
		zoomDelta = -1
	}

	center := prev.Center()
	next, navErr := ms.navigator.NextViewport(prev, navigation.Gesture{
		ZoomDelta: zoomDelta,
		PanX:      req.OffsetX - center.X,
		PanY:      req.OffsetY - center.Y,
	})
	if navErr != nil {
		if errorsx.Cause(navErr) == ownmap.ErrZoomLimit {
			ms.logger.Debug("zoom request rejected: %s", navErr.Error())
			render.JSON(w, r, statusResponse{StatusError, ownmap.ErrZoomLimit.Error()})
			return
		}
		errorsx.HTTPError(w, ms.logger, navErr, http.StatusInternalServerError)
		return
	}

	svgContent, serializeErr := ms.serialize(r, next)
	if serializeErr != nil {
		errorsx.HTTPError(w, ms.logger, serializeErr, http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, zoomResponse{
		X:          next.Origin.Lat,
		Y:          next.Origin.Lon,
		Zoom:       next.Zoom,
		SVGContent: svgContent,
		Status:     StatusOK,
		Message:    "",
	})
}

func (ms *MapService) serialize(r *http.Request, vp ownmap.Viewport) (string, errorsx.Error) {
	endBuildSpan := startSpan(r.Context(), "get map tree")
	tree, err := ms.tree.Tree()
	endBuildSpan()
	if err != nil {
		return "", err
	}

	defer startSpan(r.Context(), "serialize svg")()

	return ms.renderer.Serialize(tree, vp), nil
}
