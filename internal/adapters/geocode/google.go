package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rental-dispatch-service/internal/domain"
	"rental-dispatch-service/internal/platform/obs"
	"rental-dispatch-service/internal/ports"
)

// GoogleGeocoder resolves addresses via the Google Maps Geocoding API.
// It is the paid provider and requires an API key.
type GoogleGeocoder struct {
	client  *httpClient
	baseURL string
	apiKey  string
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("google geocoder: api key is empty")
	}
	return &GoogleGeocoder{
		client:  newHTTPClient(),
		baseURL: "https://maps.googleapis.com",
		apiKey:  apiKey,
	}, nil
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.google")(&err)

	endpoint := g.baseURL + "/maps/api/geocode/json"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("address", address)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("google geocode %q: decode response: %w", address, err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return domain.Coordinates{}, ports.ErrAddressNotFound
	}

	loc := decoded.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng}, nil
}
