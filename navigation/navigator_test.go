package navigation

import (
	"testing"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/jamesrr39/ownmap-svg/ownmap/projection"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBounds = &osm.Bounds{MinLat: 55.7, MinLon: 37.5, MaxLat: 55.8, MaxLon: 37.7}

func newTestNavigator(proj projection.Projection) *Navigator {
	return NewNavigator(proj, projection.DefaultBaseScale(proj.Name()), testBounds)
}

func viewportAtLevel(n *Navigator, level ownmap.ZoomLevel) ownmap.Viewport {
	vp := n.DefaultViewport(700, 500)
	vp.Zoom = level
	vp.Scale = n.ScaleForLevel(level)
	vp.Origin = ownmap.GeoCoordinate{Lat: 55.74, Lon: 37.58}
	return vp
}

func TestNavigator_DefaultViewport(t *testing.T) {
	n := newTestNavigator(projection.ProjectedGrid{})

	vp := n.DefaultViewport(700, 500)
	assert.Equal(t, ownmap.Viewport{
		Zoom:   1,
		Scale:  1.0 / 20,
		Origin: ownmap.GeoCoordinate{Lat: 55.7, Lon: 37.5},
		Width:  700,
		Height: 500,
	}, vp)

	n.Bounds = nil
	assert.Equal(t, ownmap.GeoCoordinate{}, n.DefaultViewport(700, 500).Origin)
}

func TestNavigator_NextViewport_zoomLimits(t *testing.T) {
	tests := []struct {
		name      string
		prevLevel ownmap.ZoomLevel
		delta     int
		wantLevel ownmap.ZoomLevel
		wantErr   bool
	}{
		{"zoom out below the lowest level", 1, -1, 1, true},
		{"zoom in above the highest level", 10, 1, 10, true},
		{"zoom out to the lowest level", 2, -1, 1, false},
		{"zoom in to the highest level", 9, 1, 10, false},
		{"pan only", 5, 0, 5, false},
		{"jump past the highest level", 5, 6, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNavigator(projection.ProjectedGrid{})
			prev := viewportAtLevel(n, tt.prevLevel)

			next, err := n.NextViewport(prev, Gesture{ZoomDelta: tt.delta})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ownmap.ErrZoomLimit, errorsx.Cause(err))
				assert.Equal(t, prev, next)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, next.Zoom)
			assert.Equal(t, n.ScaleForLevel(tt.wantLevel), next.Scale)
		})
	}
}

func TestNavigator_NextViewport_focusIsCentered(t *testing.T) {
	tests := []struct {
		name string
		proj projection.Projection
	}{
		{"projected grid", projection.ProjectedGrid{}},
		{"equirectangular local", projection.EquirectangularLocal{}},
	}
	gestures := []Gesture{
		{ZoomDelta: 1, PanX: 100, PanY: -50},
		{ZoomDelta: -1, PanX: -200, PanY: 120},
		{ZoomDelta: 0, PanX: 0, PanY: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNavigator(tt.proj)
			prev := viewportAtLevel(n, 3)
			center := prev.Center()

			for _, g := range gestures {
				focus := tt.proj.Unproject(prev, ownmap.PlanarPoint{X: center.X + g.PanX, Y: center.Y + g.PanY})
				require.True(t, ownmap.IsInBounds(*testBounds, focus))

				next, err := n.NextViewport(prev, g)
				require.NoError(t, err)

				projected := tt.proj.Project(next, focus)
				assert.InDelta(t, center.X, projected.X, 1e-6)
				assert.InDelta(t, center.Y, projected.Y, 1e-6)
			}
		})
	}
}

func TestNavigator_NextViewport_focusIsClampedToBounds(t *testing.T) {
	n := newTestNavigator(projection.ProjectedGrid{})
	prev := n.DefaultViewport(700, 500)

	// the default viewport has the bounds minimum at its bottom left corner, so this focus is south west of the bounds
	next, err := n.NextViewport(prev, Gesture{ZoomDelta: 1, PanX: -450, PanY: 350})
	require.NoError(t, err)

	centerGeo := n.Projection.Unproject(next, next.Center())
	assert.InDelta(t, testBounds.MinLat, centerGeo.Lat, 1e-9)
	assert.InDelta(t, testBounds.MinLon, centerGeo.Lon, 1e-9)
}

func TestNavigator_NextViewport_preferredGeo(t *testing.T) {
	n := newTestNavigator(projection.ProjectedGrid{})
	prev := viewportAtLevel(n, 2)

	preferred := ownmap.GeoCoordinate{Lat: 55.76, Lon: 37.65}
	next, err := n.NextViewport(prev, Gesture{ZoomDelta: 1, PanX: 300, PanY: 200, PreferredGeo: &preferred})
	require.NoError(t, err)

	centerGeo := n.Projection.Unproject(next, next.Center())
	assert.InDelta(t, preferred.Lat, centerGeo.Lat, 1e-9)
	assert.InDelta(t, preferred.Lon, centerGeo.Lon, 1e-9)
}

func TestNavigator_CenteredViewport(t *testing.T) {
	n := newTestNavigator(projection.ProjectedGrid{})

	focus := ownmap.GeoCoordinate{Lat: 55.75, Lon: 37.6}
	vp, err := n.CenteredViewport(focus, 4, 700, 500)
	require.NoError(t, err)

	assert.Equal(t, ownmap.ZoomLevel(4), vp.Zoom)
	assert.Equal(t, 4.0/20, vp.Scale)
	center := n.Projection.Project(vp, focus)
	assert.InDelta(t, 350, center.X, 1e-6)
	assert.InDelta(t, 250, center.Y, 1e-6)

	_, err = n.CenteredViewport(focus, 0, 700, 500)
	require.Error(t, err)
	assert.Equal(t, ownmap.ErrZoomLimit, errorsx.Cause(err))
}
