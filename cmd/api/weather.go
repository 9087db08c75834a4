package main

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"weather-now/internal/weather"
)

// GetWeatherInput defines the query parameters for the weather endpoint
type GetWeatherInput struct {
	City string `query:"city" doc:"City name to look up" example:"Paris"`
}

// WeatherBody is a successful lookup plus its presentation data
type WeatherBody struct {
	Query    string            `json:"query" example:"Paris"`
	Snapshot *weather.Snapshot `json:"snapshot"`
	Display  weather.Display   `json:"display"`
}

// GetWeatherOutput represents the response for the weather endpoint
type GetWeatherOutput struct {
	Body WeatherBody
}

// handleGetWeather runs one search and maps its failure kind to an HTTP status
func (app *App) handleGetWeather(ctx context.Context, input *GetWeatherInput) (*GetWeatherOutput, error) {
	controller := app.newController()

	if err := controller.Search(ctx, input.City); err != nil {
		return nil, searchErrorToHuma(err, input.City)
	}

	state := controller.State()
	return &GetWeatherOutput{
		Body: WeatherBody{
			Query:    state.Query,
			Snapshot: state.Snapshot,
			Display:  weather.NewDisplay(state.Snapshot),
		},
	}, nil
}

func searchErrorToHuma(err error, city string) error {
	var searchErr *weather.SearchError
	if !errors.As(err, &searchErr) {
		return huma.Error500InternalServerError("failed to look up weather")
	}

	detail := &huma.ErrorDetail{
		Message:  searchErr.Kind,
		Location: "query.city",
		Value:    city,
	}

	switch searchErr {
	case weather.ErrEmptyQuery:
		return huma.Error400BadRequest(searchErr.Message, detail)
	case weather.ErrCityNotFound:
		return huma.Error404NotFound(searchErr.Message, detail)
	default:
		return huma.Error502BadGateway(searchErr.Message, detail)
	}
}

// GetDisplayInput defines the query parameters for the display endpoint
type GetDisplayInput struct {
	Code int `query:"code" required:"true" doc:"WMO weather code" example:"61"`
}

// GetDisplayOutput represents the response for the display endpoint
type GetDisplayOutput struct {
	Body weather.Display
}

// handleGetDisplay returns the pure display mapping for a weather code
func (app *App) handleGetDisplay(ctx context.Context, input *GetDisplayInput) (*GetDisplayOutput, error) {
	return &GetDisplayOutput{
		Body: weather.NewDisplay(&weather.Snapshot{Weathercode: input.Code}),
	}, nil
}
