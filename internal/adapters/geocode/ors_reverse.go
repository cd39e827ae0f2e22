package geocode

import (
	"birding-trip-service/internal/adapters/orsclient"
	"birding-trip-service/internal/domain"
	"birding-trip-service/internal/platform/obs"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ORSGeocoder implements the ReverseGeocoder port using the OpenRouteService
// /geocode/reverse endpoint. The provider enforces a request-rate ceiling, so
// callers run lookups through the task scheduler rather than issuing them
// directly; this adapter only handles one coordinate at a time plus the
// tolerant parsing of the provider's payload.
//
// The adapter is safe for concurrent use.
type ORSGeocoder struct {
	client *orsclient.Client
}

func NewORSGeocoder(client *orsclient.Client) *ORSGeocoder {
	return &ORSGeocoder{client: client}
}

type reverseResponse struct {
	Features []struct {
		Properties struct {
			Label string `json:"label"`
			Name  string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// ResolveAddress returns the address label closest to the given coordinates.
func (o *ORSGeocoder) ResolveAddress(ctx context.Context, coord domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "ors.ResolveAddress")(&err)

	endpoint := o.client.BaseURL + "/geocode/reverse"

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("point.lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
		q.Set("point.lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode (%f, %f): %w", coord.Lat, coord.Lng, err)
	}
	defer resp.Body.Close()

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return "", fmt.Errorf("no reverse geocode results for (%f, %f)", coord.Lat, coord.Lng)
	}

	props := decoded.Features[0].Properties
	if props.Label != "" {
		return props.Label, nil
	}
	if props.Name != "" {
		return props.Name, nil
	}
	return "", fmt.Errorf("reverse geocode result for (%f, %f) has no usable label", coord.Lat, coord.Lng)
}
