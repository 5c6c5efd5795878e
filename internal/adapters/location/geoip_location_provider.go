package location

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/platform/obs"
)

type geoipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// GeoIPLocationProvider resolves the server's approximate position from
// an ip-api.com style endpoint. Accuracy is city-level at best; it only
// serves as a coarse fallback when no position has been set explicitly.
type GeoIPLocationProvider struct {
	baseURL string
	session *http.Client
}

func NewGeoIPLocationProvider(baseURL string, client *http.Client) *GeoIPLocationProvider {
	if baseURL == "" {
		baseURL = "http://ip-api.com"
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GeoIPLocationProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: client,
	}
}

func (p *GeoIPLocationProvider) Current(ctx context.Context) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geoip.Current")(&err)

	url := p.baseURL + "/json/?fields=status,message,lat,lon"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: %w", domain.ErrPositionUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return domain.Coordinates{}, fmt.Errorf("geoip: status %d: %w", resp.StatusCode, domain.ErrPositionUnavailable)
	}

	var body geoipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoip: decode response: %w", err)
	}

	if body.Status != "success" {
		if body.Message != "" {
			return domain.Coordinates{}, fmt.Errorf("geoip: %s: %w", body.Message, domain.ErrPositionUnavailable)
		}
		return domain.Coordinates{}, fmt.Errorf("geoip: lookup failed: %w", domain.ErrPositionUnavailable)
	}

	pos := domain.Coordinates{Lat: body.Lat, Lon: body.Lon}
	if !domain.ValidCoordinate(pos.Lat, pos.Lon) {
		return domain.Coordinates{}, fmt.Errorf("geoip: out of range position: %w", domain.ErrPositionUnavailable)
	}

	return pos, nil
}
