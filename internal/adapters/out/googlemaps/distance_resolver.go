// Package googlemaps resolves road distances with the Google Distance Matrix API.
package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"googlemaps.github.io/maps"

	"shipping/internal/core/ports"
)

const DefaultTimeout = 10 * time.Second

const elementStatusOK = "OK"

type Config struct {
	APIKey string
	// BaseURL overrides https://maps.googleapis.com, mostly for tests.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// DistanceResolver implements ports.DistanceResolver for car trips in metric units.
type DistanceResolver struct {
	client  *maps.Client
	timeout time.Duration
}

func NewDistanceResolver(cfg Config) (*DistanceResolver, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("googlemaps: api key is required")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, maps.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("googlemaps: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &DistanceResolver{client: client, timeout: timeout}, nil
}

// Distance returns the driving distance in kilometres. An answer without a usable first
// element is ports.ErrNoRoute.
func (r *DistanceResolver) Distance(ctx context.Context, origin, destination string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	})
	if err != nil {
		return 0, fmt.Errorf("distance matrix: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("%w: empty distance matrix", ports.ErrNoRoute)
	}

	element := resp.Rows[0].Elements[0]
	if element == nil || element.Status != elementStatusOK {
		status := "missing"
		if element != nil {
			status = element.Status
		}
		return 0, fmt.Errorf("%w: element status %s", ports.ErrNoRoute, status)
	}
	if element.Distance.Meters <= 0 {
		return 0, fmt.Errorf("%w: distance of %d m", ports.ErrNoRoute, element.Distance.Meters)
	}

	return float64(element.Distance.Meters) / 1000, nil
}
