// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package caltrans

// Wire types for the CWWP2 cctvStatus feed. Every leaf value arrives as
// a string, including numbers and booleans; normalization parses them.
// Field names mirror the feed exactly, quirks included: the first
// reference image key is "UpdateAgo" while the remaining eleven are
// "UpdatesAgo".

type rawResponse struct {
	Data []rawEntry `json:"data"`
}

type rawEntry struct {
	CCTV rawCCTV `json:"cctv"`
}

type rawCCTV struct {
	Index           string       `json:"index"`
	InService       string       `json:"inService"`
	RecordTimestamp rawTimestamp `json:"recordTimestamp"`
	Location        rawLocation  `json:"location"`
	ImageData       rawImageData `json:"imageData"`
}

type rawTimestamp struct {
	RecordDate string `json:"recordDate"`
	RecordTime string `json:"recordTime"`
}

type rawLocation struct {
	District     string `json:"district"`
	LocationName string `json:"locationName"`
	NearbyPlace  string `json:"nearbyPlace"`
	Longitude    string `json:"longitude"`
	Latitude     string `json:"latitude"`
	Elevation    string `json:"elevation"`
	Direction    string `json:"direction"`
	County       string `json:"county"`
	Route        string `json:"route"`
}

type rawImageData struct {
	ImageDescription  string         `json:"imageDescription"`
	StreamingVideoURL string         `json:"streamingVideoURL"`
	Static            rawImageStatic `json:"static"`
}

type rawImageStatic struct {
	CurrentImageUpdateFrequency   string `json:"currentImageUpdateFrequency"`
	CurrentImageURL               string `json:"currentImageURL"`
	ReferenceImage1UpdateAgoURL   string `json:"referenceImage1UpdateAgoURL"`
	ReferenceImage2UpdatesAgoURL  string `json:"referenceImage2UpdatesAgoURL"`
	ReferenceImage3UpdatesAgoURL  string `json:"referenceImage3UpdatesAgoURL"`
	ReferenceImage4UpdatesAgoURL  string `json:"referenceImage4UpdatesAgoURL"`
	ReferenceImage5UpdatesAgoURL  string `json:"referenceImage5UpdatesAgoURL"`
	ReferenceImage6UpdatesAgoURL  string `json:"referenceImage6UpdatesAgoURL"`
	ReferenceImage7UpdatesAgoURL  string `json:"referenceImage7UpdatesAgoURL"`
	ReferenceImage8UpdatesAgoURL  string `json:"referenceImage8UpdatesAgoURL"`
	ReferenceImage9UpdatesAgoURL  string `json:"referenceImage9UpdatesAgoURL"`
	ReferenceImage10UpdatesAgoURL string `json:"referenceImage10UpdatesAgoURL"`
	ReferenceImage11UpdatesAgoURL string `json:"referenceImage11UpdatesAgoURL"`
	ReferenceImage12UpdatesAgoURL string `json:"referenceImage12UpdatesAgoURL"`
}

// referenceImages returns the non-sentinel reference image URLs in
// chronological order, most recent first.
func (s rawImageStatic) referenceImages() []string {
	candidates := []string{
		s.ReferenceImage1UpdateAgoURL,
		s.ReferenceImage2UpdatesAgoURL,
		s.ReferenceImage3UpdatesAgoURL,
		s.ReferenceImage4UpdatesAgoURL,
		s.ReferenceImage5UpdatesAgoURL,
		s.ReferenceImage6UpdatesAgoURL,
		s.ReferenceImage7UpdatesAgoURL,
		s.ReferenceImage8UpdatesAgoURL,
		s.ReferenceImage9UpdatesAgoURL,
		s.ReferenceImage10UpdatesAgoURL,
		s.ReferenceImage11UpdatesAgoURL,
		s.ReferenceImage12UpdatesAgoURL,
	}
	var out []string
	for _, u := range candidates {
		if !isSentinel(u) {
			out = append(out, u)
		}
	}
	return out
}
