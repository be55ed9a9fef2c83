// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package ny511

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
	{"ID":"NY-1","Name":"I-87 at Albany","Url":"https://example.com/ny1.jpg","VideoUrl":"https://example.com/ny1.m3u8","Latitude":42.65,"Longitude":-73.75,"DirectionOfTravel":"North","RoadwayName":"I-87","Disabled":false,"Blocked":false},
	{"ID":"NY-2","Name":"Blocked cam","Url":"https://example.com/ny2.jpg","VideoUrl":null,"Latitude":42.70,"Longitude":-73.80,"DirectionOfTravel":"","RoadwayName":"I-90","Disabled":false,"Blocked":true},
	{"ID":"NY-3","Name":"No coordinates","Url":"","VideoUrl":null,"Latitude":0,"Longitude":0,"DirectionOfTravel":"","RoadwayName":"","Disabled":false,"Blocked":false}
]`

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NY511Config{
		Enabled:  true,
		FeedURL:  srv.URL + "/feed",
		CacheTTL: time.Minute,
	}
	client := upstream.NewClient("ny511-test", config.UpstreamConfig{
		Timeout:       5 * time.Second,
		RatePerSecond: 1000,
		RateBurst:     1000,
	})
	return New(cfg, client)
}

func TestFetchCamerasNormalizes(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody)
	}))

	got, err := a.FetchCameras(context.Background(), models.QueryOptions{})
	if err != nil {
		t.Fatalf("FetchCameras() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d cameras, want 2 (zero-coordinate record dropped)", len(got))
	}

	albany := got[0]
	if albany.ID != "ny511-NY-1" {
		t.Errorf("ID = %q, want ny511-NY-1", albany.ID)
	}
	if !albany.InService {
		t.Error("InService = false, want true")
	}
	if albany.StreamingVideoURL == nil || *albany.StreamingVideoURL != "https://example.com/ny1.m3u8" {
		t.Errorf("StreamingVideoURL = %v, want the m3u8 URL", albany.StreamingVideoURL)
	}

	blocked := got[1]
	if blocked.InService {
		t.Error("blocked camera reported as in service")
	}
	if blocked.StreamingVideoURL != nil {
		t.Errorf("null VideoUrl should stay nil, got %q", *blocked.StreamingVideoURL)
	}
}

func TestFetchCamerasDisjointBoxSkipsNetwork(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("disjoint bbox must not reach upstream")
	}))

	box := geo.BoundingBox{North: 38.0, South: 37.0, East: -121.9, West: -122.6}
	got, err := a.FetchCameras(context.Background(), models.QueryOptions{BBox: &box})
	if err != nil {
		t.Fatalf("FetchCameras() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d cameras, want 0", len(got))
	}
}

func TestFetchCameraByIDScansCachedFeed(t *testing.T) {
	var requests atomic.Int64
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, feedBody)
	}))

	cam, err := a.FetchCameraByID(context.Background(), "ny511-NY-1")
	if err != nil {
		t.Fatalf("FetchCameraByID() error = %v", err)
	}
	if cam == nil || cam.ID != "ny511-NY-1" {
		t.Fatalf("FetchCameraByID() = %+v, want ny511-NY-1", cam)
	}

	// Second lookup reuses the cached feed.
	if _, err := a.FetchCameraByID(context.Background(), "ny511-NY-2"); err != nil {
		t.Fatalf("second lookup error = %v", err)
	}
	if requests.Load() != 1 {
		t.Errorf("upstream requests = %d, want 1", requests.Load())
	}

	cam, err = a.FetchCameraByID(context.Background(), "ny511-nosuch")
	if err != nil || cam != nil {
		t.Errorf("absent id: got (%+v, %v), want (nil, nil)", cam, err)
	}
}

func TestFetchCamerasUpstreamFailureYieldsEmpty(t *testing.T) {
	a := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	got, err := a.FetchCameras(context.Background(), models.QueryOptions{})
	if err != nil {
		t.Fatalf("FetchCameras() error = %v, want graceful empty result", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d cameras, want 0", len(got))
	}
}
