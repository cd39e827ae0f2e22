package handlers

import (
	"birding-trip-service/internal/api/dto"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestPlanWSStreamsProgressThenItinerary(t *testing.T) {
	h, _ := planHandler()

	srv := httptest.NewServer(http.HandlerFunc(h.PlanWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(dto.PlanRequest{
		Start:      dto.PointRequest{Lat: 40, Lng: -75, Name: "Home"},
		End:        &dto.PointRequest{Lat: 41, Lng: -75, Name: "Lodge"},
		Candidates: inlineCandidates(),
		MaxStops:   2,
	}); err != nil {
		t.Fatalf("write request: %v", err)
	}

	sawProgress := false
	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}

		switch frame.Type {
		case "progress":
			sawProgress = true
			if frame.Message == "" {
				t.Error("progress frame without message")
			}
		case "itinerary":
			if !sawProgress {
				t.Error("itinerary arrived before any progress frame")
			}
			var resp dto.ItineraryResponse
			if err := json.Unmarshal(frame.Payload, &resp); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if resp.Summary.TotalStops != 2 {
				t.Errorf("total stops = %d, want 2", resp.Summary.TotalStops)
			}
			return
		case "error":
			t.Fatalf("unexpected error frame: %s", frame.Message)
		}
	}
}

func TestPlanWSErrorFrame(t *testing.T) {
	h, _ := planHandler()

	srv := httptest.NewServer(http.HandlerFunc(h.PlanWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// No candidates and no repository: planning cannot proceed.
	if err := conn.WriteJSON(dto.PlanRequest{
		Start: dto.PointRequest{Lat: 40, Lng: -75},
	}); err != nil {
		t.Fatalf("write request: %v", err)
	}

	var frame wsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if frame.Type != "error" {
		t.Fatalf("frame type = %q, want error", frame.Type)
	}
	if !strings.Contains(frame.Message, "no candidate locations") {
		t.Errorf("message = %q", frame.Message)
	}
}
