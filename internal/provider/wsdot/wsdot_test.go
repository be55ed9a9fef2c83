// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package wsdot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/geo"
	"github.com/tomtom215/roadwatch/internal/models"
	"github.com/tomtom215/roadwatch/internal/upstream"
)

const feedBody = `[
	{"CameraID":1004,"Title":"I-5 at Seattle","Description":"","CameraLocation":{"Latitude":47.60,"Longitude":-122.33,"Description":"Downtown","RoadName":"I-5","Direction":"N","MilePost":165.0,"County":"King"},"ImageURL":"https://example.com/1004.jpg","IsActive":true},
	{"CameraID":2001,"Title":"Snoqualmie Pass","Description":"snow conditions","CameraLocation":{"Latitude":47.42,"Longitude":-121.41,"Description":"Summit","RoadName":"I-90","Direction":"E","MilePost":52.0,"County":"Kittitas"},"ImageURL":"","IsActive":true},
	{"CameraID":3000,"Title":"Unplaced","Description":"","CameraLocation":{"Latitude":0,"Longitude":0,"Description":"","RoadName":"","Direction":"","MilePost":0,"County":""},"ImageURL":"","IsActive":false}
]`

func newTestAdapter(t *testing.T, mux *http.ServeMux) *Adapter {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := config.WSDOTConfig{
		Enabled:   true,
		FeedURL:   srv.URL + "/feed",
		CameraURL: srv.URL + "/camera",
		CacheTTL:  time.Minute,
	}
	client := upstream.NewClient("wsdot-test", config.UpstreamConfig{
		Timeout:       5 * time.Second,
		RatePerSecond: 1000,
		RateBurst:     1000,
	})
	return New(cfg, client)
}

func TestFetchCamerasNormalizesAndDrops(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody)
	})
	a := newTestAdapter(t, mux)

	got, err := a.FetchCameras(context.Background(), models.QueryOptions{})
	if err != nil {
		t.Fatalf("FetchCameras() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cameras, want 2 (null-island record dropped)", len(got))
	}

	seattle := got[0]
	if seattle.ID != "wsdot-1004" {
		t.Errorf("ID = %q, want wsdot-1004", seattle.ID)
	}
	if seattle.District != 0 {
		t.Errorf("District = %d, want 0", seattle.District)
	}
	if seattle.ImageUpdateFrequencyMinutes == nil || *seattle.ImageUpdateFrequencyMinutes != 2 {
		t.Errorf("ImageUpdateFrequencyMinutes = %v, want 2", seattle.ImageUpdateFrequencyMinutes)
	}

	pass := got[1]
	if len(pass.Categories) != 1 || pass.Categories[0] != models.CategoryWeather {
		t.Errorf("pass camera categories = %v, want [weather]", pass.Categories)
	}
	if pass.ImageURL != nil {
		t.Errorf("empty ImageURL should normalize to nil, got %q", *pass.ImageURL)
	}
}

func TestNormalizeDropsZeroCoordinate(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"both zero", 0, 0},
		{"zero latitude only", 0, -122.33},
		{"zero longitude only", 47.60, 0},
	}
	for _, tc := range cases {
		var raw rawCamera
		raw.CameraID = 9000
		raw.Title = "Unplaced"
		raw.Location.Latitude = tc.lat
		raw.Location.Longitude = tc.lon
		if _, ok := normalize(raw); ok {
			t.Errorf("%s: normalize() kept the record", tc.name)
		}
	}
}

func TestFetchCamerasDisjointBoxSkipsNetwork(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		t.Error("disjoint bbox must not reach upstream")
	})
	a := newTestAdapter(t, mux)

	// Bay Area, far south of Washington.
	box := geo.BoundingBox{North: 38.0, South: 37.0, East: -121.9, West: -122.6}
	got, err := a.FetchCameras(context.Background(), models.QueryOptions{BBox: &box})
	if err != nil {
		t.Fatalf("FetchCameras() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d cameras, want 0", len(got))
	}
}

func TestFetchCamerasBBoxFilters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody)
	})
	a := newTestAdapter(t, mux)

	// Seattle metro only; excludes Snoqualmie Pass.
	box := geo.BoundingBox{North: 47.8, South: 47.4, East: -122.0, West: -122.5}
	got, err := a.FetchCameras(context.Background(), models.QueryOptions{BBox: &box})
	if err != nil {
		t.Fatalf("FetchCameras() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "wsdot-1004" {
		t.Fatalf("got %+v, want only wsdot-1004", got)
	}
}

func TestFetchFeedCached(t *testing.T) {
	var requests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, feedBody)
	})
	a := newTestAdapter(t, mux)

	for i := 0; i < 3; i++ {
		if _, err := a.FetchCameras(context.Background(), models.QueryOptions{}); err != nil {
			t.Fatalf("FetchCameras() error = %v", err)
		}
	}
	if requests.Load() != 1 {
		t.Errorf("upstream requests = %d, want 1", requests.Load())
	}
}

func TestFetchCameraByIDUsesSingleCameraEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/camera", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("CameraID") != "1004" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"CameraID":1004,"Title":"I-5 at Seattle","CameraLocation":{"Latitude":47.60,"Longitude":-122.33,"County":"King"},"ImageURL":"https://example.com/1004.jpg","IsActive":true}`)
	})
	a := newTestAdapter(t, mux)

	cam, err := a.FetchCameraByID(context.Background(), "wsdot-1004")
	if err != nil {
		t.Fatalf("FetchCameraByID() error = %v", err)
	}
	if cam == nil || cam.ID != "wsdot-1004" {
		t.Fatalf("FetchCameraByID() = %+v, want wsdot-1004", cam)
	}
}

func TestFetchCameraByIDMalformed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/camera", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("malformed id must not reach upstream")
	})
	a := newTestAdapter(t, mux)

	for _, id := range []string{"caltrans-d4-7", "wsdot-abc", "wsdot1004", ""} {
		cam, err := a.FetchCameraByID(context.Background(), id)
		if err != nil || cam != nil {
			t.Errorf("id %q: got (%+v, %v), want (nil, nil)", id, cam, err)
		}
	}
}
