package main

import (
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/goutil/open"
	"github.com/jamesrr39/ownmap-svg/config"
	"github.com/jamesrr39/ownmap-svg/fonts"
	"github.com/jamesrr39/ownmap-svg/navigation"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/jamesrr39/ownmap-svg/ownmapdal"
	"github.com/jamesrr39/ownmap-svg/ownmaprenderer"
	"github.com/jamesrr39/ownmap-svg/styling"
	"github.com/jamesrr39/ownmap-svg/webservices"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/pkg/profile"
)

const (
	MAX_SERVER_RUNNING_ATTEMPTS = 50
)

var logger *logpkg.Logger

func main() {
	verbose := kingpin.Flag("v", "verbose logging").Bool()
	kingpin.CommandLine.PreAction(func(ctx *kingpin.ParseContext) error {
		logLevel := logpkg.LogLevelInfo
		if *verbose {
			logLevel = logpkg.LogLevelDebug
		}
		logger = logpkg.NewLogger(os.Stderr, logLevel)
		return nil
	})

	setupServe()
	setupRender()
	setupInfo()

	kingpin.Parse()
}

var extractFileHelp = fmt.Sprintf(
	"extract file to read. The type is detected from the extension (.osm or .pbf), or can be given explicitly: %s%smy/extract/file",
	ownmapdal.ExtractFileTypePBF,
	ownmapdal.ConnectionPathSeparator,
)

// sessionFlags are the flags shared by every command that renders the map
type sessionFlags struct {
	extractPath    *string
	configPath     *string
	projectionName *string
	baseScale      *float64
	emitMarkers    *bool
}

func addSessionFlags(cmd *kingpin.CmdClause) *sessionFlags {
	return &sessionFlags{
		extractPath:    cmd.Arg("extract-file", extractFileHelp).Required().String(),
		configPath:     cmd.Flag("config", "path to a YAML config file").String(),
		projectionName: cmd.Flag("projection", fmt.Sprintf("projection to draw the map with (%q or %q)", projection.NameProjectedGrid, projection.NameEquirectangularLocal)).String(),
		baseScale:      cmd.Flag("base-scale", "scale of zoom level 1. Defaults to 1/20 pixel per metre").Float64(),
		emitMarkers:    cmd.Flag("markers", "draw a marker for every node with a style tag").Bool(),
	}
}

func (f *sessionFlags) loadConfig(fs gofs.Fs) (*config.Config, errorsx.Error) {
	conf := config.DefaultConfig()
	if *f.configPath != "" {
		var err errorsx.Error
		conf, err = config.Load(fs, *f.configPath)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}
	}

	if *f.projectionName != "" {
		conf.Projection = *f.projectionName
	}
	if *f.baseScale != 0 {
		conf.BaseScale = *f.baseScale
	}
	if *f.emitMarkers {
		conf.Render.EmitMarkers = true
	}

	err := conf.Validate()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return conf, nil
}

type session struct {
	conf        *config.Config
	style       styling.Style
	svgRenderer *ownmaprenderer.SVGRenderer
	rasterer    *ownmaprenderer.RasterRenderer
	navigator   *navigation.Navigator
	tree        *ownmaprenderer.CachedTree
}

func newSession(fs gofs.Fs, flags *sessionFlags) (*session, errorsx.Error) {
	conf, err := flags.loadConfig(fs)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	proj, err := projection.ByName(conf.Projection)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	extract, err := ownmapdal.LoadExtract(logger, fs, *flags.extractPath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	style := &styling.CustomBasicStyle{}
	svgRenderer := ownmaprenderer.NewSVGRenderer(logger, proj, style, ownmaprenderer.RenderOptions{
		VisiblePercent: conf.Render.VisiblePercent,
		EmitMarkers:    conf.Render.EmitMarkers,
	})

	return &session{
		conf:        conf,
		style:       style,
		svgRenderer: svgRenderer,
		rasterer:    ownmaprenderer.NewRasterRenderer(fonts.DefaultFont(), proj, style, conf.Render.VisiblePercent),
		navigator:   navigation.NewNavigator(proj, conf.GetBaseScale(), extract.Bounds),
		tree:        ownmaprenderer.NewCachedTree(svgRenderer, extract),
	}, nil
}

func runAction(run func() errorsx.Error) kingpin.Action {
	return func(ctx *kingpin.ParseContext) error {
		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	}
}

func setupServe() {
	cmd := kingpin.Command("serve", "serve the interactive map")
	flags := addSessionFlags(cmd)
	addr := cmd.Flag("addr", "address to serve on. Ex: ':9050' listen on port 9050 to traffic from anywhere. 'localhost:9050' listen on port 9050 to traffic from localhost").String()
	traceFilePath := cmd.Flag("trace-file", "write a trace of every request to this file").String()
	shouldOpen := cmd.Flag("open", "open the map in the browser once the server is running").Bool()
	shouldProfile := cmd.Flag("profile", "profile the PNG render performance").Bool()
	cmd.Action(runAction(func() errorsx.Error {
		fs := gofs.NewOsFs()

		s, err := newSession(fs, flags)
		if err != nil {
			return errorsx.Wrap(err)
		}

		if *addr != "" {
			s.conf.Server.Addr = *addr
		}
		if *traceFilePath != "" {
			s.conf.Server.TraceFile = *traceFilePath
		}

		// build now, so the first request doesn't wait for it
		_, err = s.tree.Tree()
		if err != nil {
			return errorsx.Wrap(err)
		}

		router, err := createServer(fs, s, *shouldProfile)
		if err != nil {
			return errorsx.Wrap(err)
		}

		server := httpextra.NewServerWithTimeouts()
		server.Addr = s.conf.Server.Addr
		server.Handler = router

		if *shouldOpen {
			go openWhenRunning(server.Addr)
		}

		logger.Info("about to start serving on %q", server.Addr)

		serveErr := server.ListenAndServe()
		if serveErr != nil {
			return errorsx.Wrap(serveErr)
		}
		return nil
	}))
}

func createServer(fs gofs.Fs, s *session, shouldProfile bool) (chi.Router, errorsx.Error) {
	width, height := s.conf.Canvas.Width, s.conf.Canvas.Height

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)

	if s.conf.Server.TraceFile != "" {
		logger.Info("tracing at %q", s.conf.Server.TraceFile)

		traceFile, err := fs.Create(s.conf.Server.TraceFile)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		router.Use(tracing.Middleware(tracing.NewTracer(traceFile)))
	}

	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, s.tree, s.navigator, s.style))
		r.Mount("/", webservices.NewMapImageService(logger, s.tree, s.svgRenderer, s.rasterer, s.navigator, width, height, s.conf.Render.Concurrency, shouldProfile))
	})
	router.Mount("/", webservices.NewMapService(logger, s.tree, s.svgRenderer, s.navigator, width, height))

	return router, nil
}

func openWhenRunning(addr string) {
	url := fmt.Sprintf("http://%s", addr)

	client := http.Client{
		Timeout: time.Second * 10,
	}

	for i := 0; i < MAX_SERVER_RUNNING_ATTEMPTS; i++ {
		resp, err := client.Get(url + "/api/info")
		if err != nil {
			// retry after wait
			time.Sleep(time.Millisecond * 500)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			logger.Error("expected response code %d from /api/info call, but got %d", http.StatusOK, resp.StatusCode)
			return
		}

		err = open.OpenURL(url)
		if err != nil {
			logger.Error("couldn't open %q in the browser. Error: %q", url, err)
		}
		return
	}

	logger.Error("server did not start after %d attempts", MAX_SERVER_RUNNING_ATTEMPTS)
}

func setupRender() {
	cmd := kingpin.Command("render", "render one view of the map to a file")
	flags := addSessionFlags(cmd)
	lat := cmd.Flag("lat", "latitude of the centre of the view. Without --lat and --lon, the view starts at the bottom left corner of the extract").Float64()
	lon := cmd.Flag("lon", "longitude of the centre of the view").Float64()
	zoom := cmd.Flag("zoom", fmt.Sprintf("zoom level, from %d to %d", ownmap.MinZoomLevel, ownmap.MaxZoomLevel)).Default("1").Int()
	format := cmd.Flag("format", "output format").Default("svg").Enum("svg", "png")
	outPath := cmd.Flag("out", "file to write to. '-' writes to stdout").Short('o').Default("-").String()
	cmd.Action(runAction(func() errorsx.Error {
		fs := gofs.NewOsFs()

		s, err := newSession(fs, flags)
		if err != nil {
			return errorsx.Wrap(err)
		}

		width, height := s.conf.Canvas.Width, s.conf.Canvas.Height

		vp := s.navigator.DefaultViewport(width, height)
		vp.Zoom = ownmap.ZoomLevel(*zoom)
		vp.Scale = s.navigator.ScaleForLevel(vp.Zoom)
		if *lat != 0 || *lon != 0 {
			vp, err = s.navigator.CenteredViewport(ownmap.GeoCoordinate{Lat: *lat, Lon: *lon}, ownmap.ZoomLevel(*zoom), width, height)
			if err != nil {
				return errorsx.Wrap(err)
			}
		} else if !vp.Zoom.IsValid() {
			return errorsx.Wrap(ownmap.ErrZoomLimit, "zoom", *zoom)
		}

		tree, err := s.tree.Tree()
		if err != nil {
			return errorsx.Wrap(err)
		}

		var writer io.Writer = os.Stdout
		if *outPath != "-" {
			file, createErr := fs.Create(*outPath)
			if createErr != nil {
				return errorsx.Wrap(createErr)
			}
			defer file.Close()
			writer = file
		}

		switch *format {
		case "png":
			img, err := s.rasterer.RenderRaster(tree, vp)
			if err != nil {
				return errorsx.Wrap(err)
			}

			encodeErr := png.Encode(writer, img)
			if encodeErr != nil {
				return errorsx.Wrap(encodeErr)
			}
		default:
			_, writeErr := io.WriteString(writer, s.svgRenderer.Serialize(tree, vp))
			if writeErr != nil {
				return errorsx.Wrap(writeErr)
			}
		}

		return nil
	}))
}

func setupInfo() {
	cmd := kingpin.Command("info", "print a summary of an extract file")
	extractPath := cmd.Arg("extract-file", extractFileHelp).Required().String()
	shouldProfile := cmd.Flag("profile", "profile loading the extract").Bool()
	cmd.Action(runAction(func() errorsx.Error {
		if *shouldProfile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		extract, err := ownmapdal.LoadExtract(logger, gofs.NewOsFs(), *extractPath)
		if err != nil {
			return errorsx.Wrap(err)
		}

		if extract.Bounds == nil {
			fmt.Println("bounds: (none)")
		} else {
			fmt.Printf("bounds (NW, SE): [%f %f, %f %f]\n", extract.Bounds.MaxLat, extract.Bounds.MinLon, extract.Bounds.MinLat, extract.Bounds.MaxLon)
		}
		fmt.Printf("nodes: %s (tagged: %s)\n", humanize.Comma(int64(len(extract.Nodes))), humanize.Comma(int64(len(extract.TaggedNodes))))
		fmt.Printf("ways: %s\n", humanize.Comma(int64(len(extract.Ways))))
		fmt.Printf("relations: %s\n", humanize.Comma(int64(len(extract.Relations))))

		return nil
	}))
}
