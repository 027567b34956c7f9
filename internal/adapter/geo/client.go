package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// HTTPClient resolves coordinates against a Nominatim-style reverse
// geocoding API. Resolution failures of any kind degrade to
// model.PlaceUnknown; the resolver never returns an error to callers.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// address mirrors the relevant part of the reverse geocoding payload.
type address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	Hamlet  string `json:"hamlet"`
	State   string `json:"state"`
	Region  string `json:"region"`
}

type response struct {
	Address address `json:"address"`
}

// NewHTTPClient creates an HTTP geo client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse geo url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("geo url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// City resolves the city-level place name for the coordinates.
func (c *HTTPClient) City(ctx context.Context, pt model.GeoPoint) string {
	addr, ok := c.reverse(ctx, pt)
	if !ok {
		return model.PlaceUnknown
	}
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.Hamlet} {
		if candidate != "" {
			return candidate
		}
	}
	return model.PlaceUnknown
}

// Province resolves the administrative province for the coordinates.
func (c *HTTPClient) Province(ctx context.Context, pt model.GeoPoint) string {
	addr, ok := c.reverse(ctx, pt)
	if !ok {
		return model.PlaceUnknown
	}
	if addr.State != "" {
		return addr.State
	}
	if addr.Region != "" {
		return addr.Region
	}
	return model.PlaceUnknown
}

func (c *HTTPClient) reverse(ctx context.Context, pt model.GeoPoint) (address, bool) {
	endpoint := *c.baseURL
	endpoint.Path = "/reverse"
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(pt.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(pt.Lon, 'f', -1, 64))
	q.Set("accept-language", "en")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return address{}, false
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gazetka-loyalty")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("geo request failed", slog.String("error", err.Error()))
		return address{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("geo request rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return address{}, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return address{}, false
	}
	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Warn("geo response decode failed", slog.String("error", err.Error()))
		return address{}, false
	}
	return data.Address, true
}
