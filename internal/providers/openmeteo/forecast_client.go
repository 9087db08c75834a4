package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=48.85&longitude=2.35&current_weather=true
const (
	baseForecastURL = "https://api.open-meteo.com/v1/forecast"
)

// ErrMissingCurrentWeather is returned when a forecast response has no current_weather block
var ErrMissingCurrentWeather = errors.New("response missing current_weather")

type ForecastClient struct {
	requester
}

// NewForecastClient creates a client for the Open-Meteo forecast API
func NewForecastClient(logger *slog.Logger, opts ...ClientOption) *ForecastClient {
	return &ForecastClient{
		requester: newRequester(baseForecastURL, logger.With("component", "openmeteo-forecast-client"), opts),
	}
}

// GetCurrentWeather fetches current conditions for the given coordinates.
// Temperatures are in °C and wind speeds in km/h, the API defaults.
func (c *ForecastClient) GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*ForecastAPIResponse, error) {
	u, err := c.buildURL(url.Values{
		"latitude":        {fmt.Sprintf("%f", latitude)},
		"longitude":       {fmt.Sprintf("%f", longitude)},
		"current_weather": {"true"},
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetching Open-Meteo current weather",
		"latitude", latitude,
		"longitude", longitude,
		"url", u.String(),
	)

	var apiResp ForecastAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		c.logger.Error("failed to fetch Open-Meteo current weather",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, err
	}

	if apiResp.CurrentWeather == nil {
		return nil, ErrMissingCurrentWeather
	}

	c.logger.Debug("successfully fetched Open-Meteo current weather",
		"latitude", latitude,
		"longitude", longitude,
		"temperature", apiResp.CurrentWeather.Temperature,
		"weathercode", apiResp.CurrentWeather.Weathercode,
	)

	return &apiResp, nil
}
