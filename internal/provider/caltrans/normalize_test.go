// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package caltrans

import (
	"testing"

	"github.com/tomtom215/roadwatch/internal/models"
)

func validRaw() rawCCTV {
	return rawCCTV{
		Index:     "7",
		InService: "true",
		RecordTimestamp: rawTimestamp{
			RecordDate: "2026-08-30",
			RecordTime: "14:22:05",
		},
		Location: rawLocation{
			District:     "4",
			LocationName: "US-101 : North of Sierra Point",
			NearbyPlace:  "Brisbane",
			Longitude:    "-122.398",
			Latitude:     "37.678",
			Elevation:    "23",
			Direction:    "North",
			County:       "San Mateo",
			Route:        "US-101",
		},
		ImageData: rawImageData{
			ImageDescription:  "Looking north along 101",
			StreamingVideoURL: "https://example.com/stream.m3u8",
			Static: rawImageStatic{
				CurrentImageUpdateFrequency:  "5",
				CurrentImageURL:              "https://example.com/current.jpg",
				ReferenceImage1UpdateAgoURL:  "https://example.com/ref1.jpg",
				ReferenceImage3UpdatesAgoURL: "https://example.com/ref3.jpg",
			},
		},
	}
}

func TestNormalizeFullRecord(t *testing.T) {
	cam, ok := normalize(validRaw(), 4)
	if !ok {
		t.Fatal("normalize() dropped a valid record")
	}

	if cam.ID != "caltrans-d4-7" {
		t.Errorf("ID = %q, want caltrans-d4-7", cam.ID)
	}
	if cam.Provider != "caltrans" {
		t.Errorf("Provider = %q, want caltrans", cam.Provider)
	}
	if cam.District != 4 {
		t.Errorf("District = %d, want 4", cam.District)
	}
	if cam.Latitude != 37.678 || cam.Longitude != -122.398 {
		t.Errorf("coordinates = (%v, %v), want (37.678, -122.398)", cam.Latitude, cam.Longitude)
	}
	if cam.Elevation == nil || *cam.Elevation != 23 {
		t.Errorf("Elevation = %v, want 23", cam.Elevation)
	}
	if !cam.InService {
		t.Error("InService = false, want true")
	}
	if cam.RecordedAt != "2026-08-30T14:22:05" {
		t.Errorf("RecordedAt = %q, want 2026-08-30T14:22:05", cam.RecordedAt)
	}
	if cam.ImageUpdateFrequencyMinutes == nil || *cam.ImageUpdateFrequencyMinutes != 5 {
		t.Errorf("ImageUpdateFrequencyMinutes = %v, want 5", cam.ImageUpdateFrequencyMinutes)
	}
	if len(cam.ReferenceImages) != 2 {
		t.Fatalf("ReferenceImages = %v, want 2 entries", cam.ReferenceImages)
	}
	if cam.ReferenceImages[0] != "https://example.com/ref1.jpg" {
		t.Errorf("ReferenceImages[0] = %q, want ref1", cam.ReferenceImages[0])
	}
}

func TestNormalizeSentinels(t *testing.T) {
	raw := validRaw()
	raw.Location.Elevation = "Not Reported"
	raw.Location.NearbyPlace = "N/A"
	raw.Location.Direction = ""
	raw.ImageData.StreamingVideoURL = "Not Reported"
	raw.ImageData.ImageDescription = ""
	raw.ImageData.Static.CurrentImageUpdateFrequency = "N/A"

	cam, ok := normalize(raw, 4)
	if !ok {
		t.Fatal("normalize() dropped the record")
	}

	if cam.Elevation != nil {
		t.Errorf("Elevation = %v, want nil", *cam.Elevation)
	}
	if cam.NearbyPlace != "" {
		t.Errorf("NearbyPlace = %q, want empty", cam.NearbyPlace)
	}
	if cam.Direction != "" {
		t.Errorf("Direction = %q, want empty", cam.Direction)
	}
	if cam.StreamingVideoURL != nil {
		t.Errorf("StreamingVideoURL = %v, want nil", *cam.StreamingVideoURL)
	}
	if cam.ImageDescription != "" {
		t.Errorf("ImageDescription = %q, want empty", cam.ImageDescription)
	}
	if cam.ImageURL == nil || *cam.ImageURL != "https://example.com/current.jpg" {
		t.Errorf("ImageURL = %v, want current.jpg", cam.ImageURL)
	}
	if cam.ImageUpdateFrequencyMinutes != nil {
		t.Errorf("ImageUpdateFrequencyMinutes = %v, want nil", *cam.ImageUpdateFrequencyMinutes)
	}
}

func TestNormalizeDropsUnusableCoordinates(t *testing.T) {
	// "NaN" and the Inf spellings parse without error, so they exercise
	// the finiteness check rather than the ParseFloat error path.
	bad := []string{"Not Reported", "", "N/A", "garbage", "NaN", "Infinity", "+Inf", "-Inf"}
	for _, lat := range bad {
		raw := validRaw()
		raw.Location.Latitude = lat
		if _, ok := normalize(raw, 4); ok {
			t.Errorf("normalize() kept record with latitude %q", lat)
		}
	}
	for _, lon := range bad {
		raw := validRaw()
		raw.Location.Longitude = lon
		if _, ok := normalize(raw, 4); ok {
			t.Errorf("normalize() kept record with longitude %q", lon)
		}
	}
}

func TestNormalizeOutOfService(t *testing.T) {
	raw := validRaw()
	raw.InService = "false"

	cam, ok := normalize(raw, 4)
	if !ok {
		t.Fatal("normalize() dropped the record")
	}
	if cam.InService {
		t.Error("InService = true, want false")
	}
}

func TestNormalizePartialTimestamp(t *testing.T) {
	raw := validRaw()
	raw.RecordTimestamp.RecordTime = "Not Reported"

	cam, _ := normalize(raw, 4)
	if cam.RecordedAt != "" {
		t.Errorf("RecordedAt = %q, want empty", cam.RecordedAt)
	}
}

func TestInferCategories(t *testing.T) {
	tests := []struct {
		name        string
		location    string
		description string
		want        []models.Category
	}{
		{"plain urban camera", "US-101 : North of Sierra Point", "Looking north", nil},
		{"mountain pass", "I-80 : Donner Pass", "", []models.Category{models.CategoryWeather}},
		{"chain control", "SR-89 : Chain Control Area", "", []models.Category{models.CategoryWeather}},
		{"fog in description", "I-5 : Stockton", "fog monitoring", []models.Category{models.CategoryWeather}},
		{"work zone", "SR-99 : Elk Grove", "work zone camera", []models.Category{models.CategoryConstruction}},
		{"summit construction", "Tejon Summit Project", "", []models.Category{models.CategoryWeather, models.CategoryConstruction}},
		{"case insensitive", "DONNER SUMMIT", "", []models.Category{models.CategoryWeather}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inferCategories(tt.location, tt.description)
			if len(got) != len(tt.want) {
				t.Fatalf("inferCategories() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("category[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
