package handlers

import (
	"birding-trip-service/internal/api/dto"
	"birding-trip-service/internal/ports"
	"log"
	"net/http"
)

// HotspotHandler exposes read-only hotspot retrieval endpoints.
type HotspotHandler struct {
	Repo ports.HotspotRepository
}

func (h *HotspotHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	hotspots, err := h.Repo.ListHotspots(r.Context())
	if err != nil {
		log.Printf("list hotspots failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListHotspotsResponse{
		Hotspots: make([]dto.HotspotResponse, 0, len(hotspots)),
	}
	for _, h := range hotspots {
		res.Hotspots = append(res.Hotspots, dto.HotspotResponse{
			HotspotID:        h.ID,
			Name:             h.Name,
			Lat:              h.Coordinates.Lat,
			Lng:              h.Coordinates.Lng,
			ObservationScore: h.ObservationScore,
			Address:          h.Address,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
