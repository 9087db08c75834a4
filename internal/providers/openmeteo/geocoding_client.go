package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Paris&count=10&language=en&format=json
const (
	baseGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	defaultGeocodingCount = 10
	defaultLanguage       = "en"
)

var validate = validator.New()

type GeocodingClient struct {
	requester
	count    int
	language string
}

// NewGeocodingClient creates a client for the Open-Meteo geocoding API
func NewGeocodingClient(logger *slog.Logger, opts ...ClientOption) *GeocodingClient {
	return &GeocodingClient{
		requester: newRequester(baseGeocodingURL, logger.With("component", "openmeteo-geocoding-client"), opts),
		count:     defaultGeocodingCount,
		language:  defaultLanguage,
	}
}

// SetResultOptions overrides the number of candidates requested and their language
func (c *GeocodingClient) SetResultOptions(count int, language string) {
	if count > 0 {
		c.count = count
	}
	if language != "" {
		c.language = language
	}
}

// Search looks up candidate locations for a free-text place name.
// Zero matches is not an error: the response simply carries no results.
func (c *GeocodingClient) Search(ctx context.Context, name string) (*GeocodingAPIResponse, error) {
	u, err := c.buildURL(url.Values{
		"name":     {name},
		"count":    {strconv.Itoa(c.count)},
		"language": {c.language},
		"format":   {"json"},
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("searching Open-Meteo geocoding",
		"name", name,
		"url", u.String(),
	)

	var apiResp GeocodingAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		c.logger.Error("failed to search Open-Meteo geocoding",
			"name", name,
			"error", err,
		)
		return nil, err
	}

	// Only the best match is ever used, so later candidates are not checked
	if len(apiResp.Results) > 0 {
		if err := validate.Struct(&apiResp.Results[0]); err != nil {
			return nil, fmt.Errorf("invalid geocoding response: %w", err)
		}
	}

	c.logger.Debug("successfully searched Open-Meteo geocoding",
		"name", name,
		"results", len(apiResp.Results),
	)

	return &apiResp, nil
}
