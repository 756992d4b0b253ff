package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maariam000/DevCamper/internal/models"
)

// Client resolves street addresses to GeoJSON points through a
// MapQuest-compatible geocoding API.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		APIKey:     apiKey,
	}
}

type geocodeResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			Country    string `json:"adminArea1"`
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, address string) (models.Location, error) {
	q := url.Values{}
	q.Set("key", c.APIKey)
	q.Set("location", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return models.Location{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Location{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Location{}, err
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return models.Location{}, fmt.Errorf("no geocoding result for %q", address)
	}

	loc := body.Results[0].Locations[0]
	return models.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.LatLng.Lng, loc.LatLng.Lat},
		FormattedAddress: formatAddress(loc.Street, loc.City, loc.State, loc.PostalCode, loc.Country),
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.PostalCode,
		Country:          loc.Country,
	}, nil
}

// formatAddress assembles the provider-formatted address from the parsed
// components, skipping whatever the provider left blank.
func formatAddress(street, city, state, zip, country string) string {
	parts := make([]string, 0, 4)
	if street != "" {
		parts = append(parts, street)
	}
	if city != "" {
		parts = append(parts, city)
	}
	if region := strings.TrimSpace(state + " " + zip); region != "" {
		parts = append(parts, region)
	}
	if country != "" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}
