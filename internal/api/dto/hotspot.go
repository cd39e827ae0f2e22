package dto

type HotspotResponse struct {
	HotspotID        string  `json:"hotspot_id"`
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	ObservationScore int     `json:"observation_score"`
	Address          string  `json:"address,omitempty"`
}

type ListHotspotsResponse struct {
	Hotspots []HotspotResponse `json:"hotspots"`
}
