package webservices

import (
	"image/png"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/ownmap-svg/navigation"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/maprenderer"
	"github.com/jamesrr39/ownmap-svg/ownmaprenderer"
	"github.com/jamesrr39/semaphore"
	"github.com/pkg/profile"
)

// MapImageService renders single viewports, as SVG or as a PNG preview
type MapImageService struct {
	logger        *logpkg.Logger
	tree          *ownmaprenderer.CachedTree
	svgRenderer   *ownmaprenderer.SVGRenderer
	rasterer      maprenderer.MapRenderer
	navigator     *navigation.Navigator
	sema          *semaphore.Semaphore
	width         int
	height        int
	shouldProfile bool
	chi.Router
}

func NewMapImageService(
	logger *logpkg.Logger,
	tree *ownmaprenderer.CachedTree,
	svgRenderer *ownmaprenderer.SVGRenderer,
	rasterer maprenderer.MapRenderer,
	navigator *navigation.Navigator,
	width, height int,
	maxConcurrentRenders uint,
	shouldProfile bool,
) *MapImageService {
	ms := &MapImageService{
		logger,
		tree,
		svgRenderer,
		rasterer,
		navigator,
		semaphore.NewSemaphore(maxConcurrentRenders),
		width,
		height,
		shouldProfile,
		chi.NewRouter(),
	}

	ms.Get("/map.svg", ms.handleGetSVG)
	ms.Get("/map.png", ms.handleGetPNG)

	return ms
}

// viewportFromQuery reads "lat", "lon" and "zoom". Without lat and lon, the viewport is centred on the extract.
func (ms *MapImageService) viewportFromQuery(query url.Values) (ownmap.Viewport, errorsx.Error) {
	zoom := ownmap.MinZoomLevel
	if zoomStr := query.Get("zoom"); zoomStr != "" {
		zoomInt, err := strconv.Atoi(zoomStr)
		if err != nil {
			return ownmap.Viewport{}, errorsx.Wrap(err, "zoom", zoomStr)
		}
		zoom = ownmap.ZoomLevel(zoomInt)
	}

	latStr, lonStr := query.Get("lat"), query.Get("lon")
	if latStr == "" && lonStr == "" {
		return ms.navigator.CenteredViewport(ms.extractCenter(), zoom, ms.width, ms.height)
	}

	floats, err := stringsToFloats(latStr, lonStr)
	if err != nil {
		return ownmap.Viewport{}, errorsx.Wrap(err, "lat", latStr, "lon", lonStr)
	}

	return ms.navigator.CenteredViewport(ownmap.GeoCoordinate{Lat: floats[0], Lon: floats[1]}, zoom, ms.width, ms.height)
}

func (ms *MapImageService) extractCenter() ownmap.GeoCoordinate {
	bounds := ms.navigator.Bounds
	if bounds == nil {
		return ownmap.GeoCoordinate{}
	}

	return ownmap.GeoCoordinate{
		Lat: (bounds.MinLat + bounds.MaxLat) / 2,
		Lon: (bounds.MinLon + bounds.MaxLon) / 2,
	}
}

func (ms *MapImageService) handleGetSVG(w http.ResponseWriter, r *http.Request) {
	vp, err := ms.viewportFromQuery(r.URL.Query())
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusBadRequest)
		return
	}

	tree, err := ms.tree.Tree()
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusInternalServerError)
		return
	}

	ms.sema.Add()
	defer ms.sema.Done()

	endSpan := startSpan(r.Context(), "serialize svg")
	svgContent := ms.svgRenderer.Serialize(tree, vp)
	endSpan()

	w.Header().Set("Content-Type", "image/svg+xml")
	_, writeErr := w.Write([]byte(svgContent))
	if writeErr != nil {
		ms.logger.Debug("failed to write svg response. Error: %q", writeErr)
	}
}

func (ms *MapImageService) handleGetPNG(w http.ResponseWriter, r *http.Request) {
	if ms.shouldProfile {
		defer profile.Start().Stop()
	}

	vp, err := ms.viewportFromQuery(r.URL.Query())
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusBadRequest)
		return
	}

	tree, err := ms.tree.Tree()
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusInternalServerError)
		return
	}

	center := ms.navigator.Projection.Unproject(vp, vp.Center())
	ms.logger.Debug("serving png. Centre: [%f %f], zoom: %d", center.Lat, center.Lon, vp.Zoom)

	ms.sema.Add()
	defer ms.sema.Done()

	endSpan := startSpan(r.Context(), "render raster")
	img, err := ms.rasterer.RenderRaster(tree, vp)
	endSpan()
	if err != nil {
		errorsx.HTTPError(w, ms.logger, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	encodeErr := png.Encode(w, img)
	if encodeErr != nil {
		switch encodeErr.(type) {
		case *net.OpError:
			// broken pipe (request cancelled). Do nothing
		default:
			errorsx.HTTPError(w, ms.logger, errorsx.Wrap(encodeErr), http.StatusInternalServerError)
		}
		return
	}
}

func stringsToFloats(s ...string) ([]float64, error) {
	var floats []float64
	for _, str := range s {
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, err
		}
		floats = append(floats, f)
	}

	return floats, nil
}
