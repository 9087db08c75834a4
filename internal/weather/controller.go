package weather

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"weather-now/internal/providers/openmeteo"
	"weather-now/internal/types"
)

// Geocoder resolves a free-text place name to candidate locations
type Geocoder interface {
	Search(ctx context.Context, name string) (*openmeteo.GeocodingAPIResponse, error)
}

// Forecaster fetches current conditions for a coordinate
type Forecaster interface {
	GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*openmeteo.ForecastAPIResponse, error)
}

// TimezoneResolver fills in a timezone when the geocoder did not return one
type TimezoneResolver interface {
	Resolve(coords types.Coords) (string, error)
}

// Option configures a Controller
type Option func(*Controller)

// WithTimezoneResolver sets the fallback used for locations without a timezone
func WithTimezoneResolver(resolver TimezoneResolver) Option {
	return func(c *Controller) {
		c.timezoneResolver = resolver
	}
}

// Controller owns the widget state and runs searches against the two collaborators.
//
// Overlapping searches are not coordinated: each runs to completion and whichever
// finishes last overwrites the state.
type Controller struct {
	geocoder         Geocoder
	forecaster       Forecaster
	timezoneResolver TimezoneResolver
	logger           *slog.Logger

	mu    sync.Mutex
	state UiState
}

// NewController creates a controller in the idle state
func NewController(geocoder Geocoder, forecaster Forecaster, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		geocoder:   geocoder,
		forecaster: forecaster,
		logger:     logger.With("component", "weather-controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state
func (c *Controller) State() UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Search geocodes query, fetches current weather for the first candidate and
// publishes the result. The returned error is ErrEmptyQuery, ErrCityNotFound,
// ErrNetwork or nil, and is also recorded in the state.
func (c *Controller) Search(ctx context.Context, query string) (err error) {
	logger := c.logger.With("search_id", uuid.NewString(), "query", query)

	c.mu.Lock()
	c.state.Query = query
	if strings.TrimSpace(query) == "" {
		c.state.Snapshot = nil
		c.state.Err = ErrEmptyQuery
		c.mu.Unlock()
		logger.Debug("rejected blank query")
		return ErrEmptyQuery
	}
	c.state.Snapshot = nil
	c.state.Err = nil
	c.state.Loading = true
	c.mu.Unlock()

	var snapshot *Snapshot
	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.Loading = false
		c.state.Snapshot = snapshot
		c.state.Err = err
	}()

	snapshot, err = c.lookup(ctx, logger, query)
	if err != nil {
		snapshot = nil
	}
	return err
}

func (c *Controller) lookup(ctx context.Context, logger *slog.Logger, query string) (*Snapshot, error) {
	logger.Debug("geocoding query")

	geoResp, err := c.geocoder.Search(ctx, query)
	if err != nil {
		logger.Error("failed to geocode query", "error", err)
		return nil, ErrNetwork
	}
	if geoResp == nil || len(geoResp.Results) == 0 {
		logger.Info("no geocoding candidates for query")
		return nil, ErrCityNotFound
	}

	location := toLocation(geoResp.Results[0])

	logger.Debug("resolved location",
		"name", location.Name,
		"country", location.Country,
		"latitude", location.Coordinates.Latitude,
		"longitude", location.Coordinates.Longitude,
	)

	weatherResp, err := c.forecaster.GetCurrentWeather(ctx, location.Coordinates.Latitude, location.Coordinates.Longitude)
	if err != nil {
		logger.Error("failed to fetch current weather", "error", err)
		return nil, ErrNetwork
	}
	if weatherResp == nil || weatherResp.CurrentWeather == nil {
		logger.Error("current weather response is empty")
		return nil, ErrNetwork
	}

	if location.Timezone == "" && c.timezoneResolver != nil {
		tz, err := c.timezoneResolver.Resolve(location.Coordinates)
		if err != nil {
			logger.Warn("failed to resolve timezone", "error", err)
		}
		location.Timezone = tz
	}

	snapshot := newSnapshot(location, weatherResp.CurrentWeather)

	logger.Info("weather lookup complete",
		"city", snapshot.City,
		"country", snapshot.Country,
		"temperature", snapshot.Temperature,
		"weathercode", snapshot.Weathercode,
	)

	return snapshot, nil
}

// toLocation converts an Open-Meteo geocoding candidate to a domain Location
func toLocation(result openmeteo.GeocodingResult) types.Location {
	return types.Location{
		Coordinates: types.NewCoords(result.Latitude, result.Longitude),
		Name:        result.Name,
		Country:     result.Country,
		CountryCode: result.CountryCode,
		Timezone:    result.Timezone,
	}
}

func newSnapshot(location types.Location, current *openmeteo.CurrentWeather) *Snapshot {
	return &Snapshot{
		City:        location.Name,
		Country:     location.Country,
		Temperature: current.Temperature,
		Windspeed:   current.Windspeed,
		Weathercode: current.Weathercode,
		Description: types.WeatherCode(current.Weathercode).Description(),
		Timezone:    location.Timezone,
	}
}
