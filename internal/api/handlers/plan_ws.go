package handlers

import (
	"birding-trip-service/internal/api/dto"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

type wsFrame struct {
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	Percent int             `json:"percent,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// PlanWS handles GET /itineraries/ws: the client sends one plan request and
// receives progress frames while the itinerary is being built, then the final
// itinerary (or an error frame). Progress is observational only; dropping
// the connection mid-plan simply discards the eventual result.
func (h *ItineraryHandler) PlanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var req dto.PlanRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(wsFrame{Type: "error", Message: "invalid plan request"})
		return
	}

	write := func(f wsFrame) {
		if err := conn.WriteJSON(f); err != nil {
			log.Printf("plan ws write failed: %v", err)
		}
	}

	onProgress := func(message string, percent int) {
		write(wsFrame{Type: "progress", Message: message, Percent: percent})
	}

	itinerary, err := h.plan(r.Context(), req, onProgress)
	if err != nil {
		_, msg := planErrorStatus(err)
		write(wsFrame{Type: "error", Message: msg})
		return
	}

	payload, err := json.Marshal(toItineraryResponse(itinerary))
	if err != nil {
		log.Printf("plan ws encode failed: %v", err)
		write(wsFrame{Type: "error", Message: "internal server error"})
		return
	}
	write(wsFrame{Type: "itinerary", Payload: payload})
}
