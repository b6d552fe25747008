package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/paanihub/paanictl/internal/models"
)

const defaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// Geocoder resolves free-text addresses to coordinates and back using the
// Google Maps Geocoding API.
type Geocoder struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

type Option func(*Geocoder)

// WithEndpoint overrides the geocoding endpoint, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(g *Geocoder) { g.endpoint = endpoint }
}

func NewGeocoder(apiKey string, opts ...Option) *Geocoder {
	g := &Geocoder{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates.
func (g *Geocoder) Geocode(ctx context.Context, address string) (models.Location, error) {
	query := url.Values{"address": {address}}
	return g.lookup(ctx, query)
}

// ReverseGeocode resolves coordinates to the nearest formatted address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (models.Location, error) {
	query := url.Values{"latlng": {fmt.Sprintf("%f,%f", lat, lng)}}
	return g.lookup(ctx, query)
}

func (g *Geocoder) lookup(ctx context.Context, query url.Values) (models.Location, error) {
	if g.apiKey != "" {
		query.Set("key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Location{}, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		return models.Location{}, fmt.Errorf("geocoding failed: %s", payload.Status)
	}

	result := payload.Results[0]
	return models.Location{
		Lat:     result.Geometry.Location.Lat,
		Lng:     result.Geometry.Location.Lng,
		Address: result.FormattedAddress,
	}, nil
}
