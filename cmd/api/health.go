package main

import (
	"context"
)

const serviceName = "weather-now"

// PingOutput represents the response for the ping endpoint
type PingOutput struct {
	Body struct {
		Message string `json:"message" example:"pong" doc:"Response message"`
		Service string `json:"service" example:"weather-now" doc:"Service name"`
	}
}

// handlePing reports that the process is up; it does not call the weather providers
func (app *App) handlePing(ctx context.Context, input *struct{}) (*PingOutput, error) {
	resp := &PingOutput{}
	resp.Body.Message = "pong"
	resp.Body.Service = serviceName
	return resp, nil
}
