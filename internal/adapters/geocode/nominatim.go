package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/platform/obs"
	"rental-dispatch-service/internal/ports"
)

// NominatimGeocoder resolves addresses via the OpenStreetMap Nominatim
// search endpoint. It is the free provider; Nominatim requires a descriptive
// User-Agent on every request.
type NominatimGeocoder struct {
	client    *httpClient
	baseURL   string
	userAgent string
}

func NewNominatimGeocoder(userAgent string) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:    newHTTPClient(),
		baseURL:   "https://nominatim.openstreetmap.org",
		userAgent: userAgent,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.nominatim")(&err)

	endpoint := g.baseURL + "/search"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", g.userAgent)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("q", address)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: decode response: %w", address, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, ports.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: parse lat: %w", address, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim geocode %q: parse lon: %w", address, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
