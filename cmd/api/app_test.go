package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"weather-now/internal/config"
	"weather-now/internal/providers/openmeteo"
	"weather-now/internal/weather"
)

type stubGeocoder struct {
	response *openmeteo.GeocodingAPIResponse
	err      error
}

func (s *stubGeocoder) Search(ctx context.Context, name string) (*openmeteo.GeocodingAPIResponse, error) {
	return s.response, s.err
}

type stubForecaster struct {
	response *openmeteo.ForecastAPIResponse
	err      error
}

func (s *stubForecaster) GetCurrentWeather(ctx context.Context, latitude, longitude float64) (*openmeteo.ForecastAPIResponse, error) {
	return s.response, s.err
}

func newTestApp(t *testing.T, geocoder weather.Geocoder, forecaster weather.Forecaster) *App {
	t.Helper()

	cfg := &config.Config{Server: config.ServerConfig{Port: 8080, GinMode: gin.TestMode}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := NewAppWithProviders(cfg, logger, geocoder, forecaster)
	if err != nil {
		t.Fatalf("NewAppWithProviders() error = %v", err)
	}
	return app
}

func parisApp(t *testing.T) *App {
	return newTestApp(t,
		&stubGeocoder{response: &openmeteo.GeocodingAPIResponse{
			Results: []openmeteo.GeocodingResult{
				{Name: "Paris", Country: "France", Latitude: 48.85, Longitude: 2.35, Timezone: "Europe/Paris"},
			},
		}},
		&stubForecaster{response: &openmeteo.ForecastAPIResponse{
			CurrentWeather: &openmeteo.CurrentWeather{Temperature: 21.0, Windspeed: 10.5, Weathercode: 1},
		}},
	)
}

func serve(app *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := serve(parisApp(t), "/ping")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"pong"`) {
		t.Errorf("body = %s, want pong message", rec.Body.String())
	}
}

func TestGetWeather_Success(t *testing.T) {
	rec := serve(parisApp(t), "/api/v1/weather?city=Paris")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body WeatherBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	want := WeatherBody{
		Query: "Paris",
		Snapshot: &weather.Snapshot{
			City:        "Paris",
			Country:     "France",
			Temperature: 21.0,
			Windspeed:   10.5,
			Weathercode: 1,
			Description: "Mainly clear",
			Timezone:    "Europe/Paris",
		},
		Display: weather.NewDisplay(&weather.Snapshot{Weathercode: 1}),
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestGetWeather_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		geocoder   *stubGeocoder
		forecaster *stubForecaster
		wantStatus int
		wantKind   string
	}{
		{
			name:       "missing city",
			query:      "",
			geocoder:   &stubGeocoder{},
			forecaster: &stubForecaster{},
			wantStatus: http.StatusBadRequest,
			wantKind:   "EmptyQuery",
		},
		{
			name:       "blank city",
			query:      "?city=" + url.QueryEscape("   "),
			geocoder:   &stubGeocoder{},
			forecaster: &stubForecaster{},
			wantStatus: http.StatusBadRequest,
			wantKind:   "EmptyQuery",
		},
		{
			name:       "unknown city",
			query:      "?city=Zzzznotacity",
			geocoder:   &stubGeocoder{response: &openmeteo.GeocodingAPIResponse{}},
			forecaster: &stubForecaster{},
			wantStatus: http.StatusNotFound,
			wantKind:   "CityNotFound",
		},
		{
			name:       "geocoder down",
			query:      "?city=Paris",
			geocoder:   &stubGeocoder{err: errors.New("dial tcp: connection refused")},
			forecaster: &stubForecaster{},
			wantStatus: http.StatusBadGateway,
			wantKind:   "NetworkError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestApp(t, tt.geocoder, tt.forecaster), "/api/v1/weather"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var body struct {
				Detail string `json:"detail"`
				Errors []struct {
					Message string `json:"message"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if len(body.Errors) != 1 || body.Errors[0].Message != tt.wantKind {
				t.Errorf("errors = %+v, want single %s detail", body.Errors, tt.wantKind)
			}
			if strings.Contains(rec.Body.String(), "connection refused") {
				t.Error("response exposes the underlying network error")
			}
		})
	}
}

func TestGetDisplay(t *testing.T) {
	rec := serve(parisApp(t), "/api/v1/weather/display?code=73")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got weather.Display
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if got.Condition != weather.ConditionSnow || got.Icon != weather.IconSnow || got.Gradient != weather.GradientSnow {
		t.Errorf("display = %+v, want snow mapping", got)
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name         string
		app          *App
		target       string
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "idle page uses default background",
			app:          parisApp(t),
			target:       "/",
			wantContains: []string{weather.GradientDefault.CSS(), `name="city"`},
			wantMissing:  []string{`class="error"`, `class="card"`},
		},
		{
			name:         "successful search renders card",
			app:          parisApp(t),
			target:       "/?city=Paris",
			wantContains: []string{"Paris, France", "21°C", "10.5 km/h", weather.GradientCloudy.CSS(), weather.IconCloudy.Glyph()},
			wantMissing:  []string{`class="error"`},
		},
		{
			name:         "blank search shows inline error",
			app:          parisApp(t),
			target:       "/?city=",
			wantContains: []string{"please enter a city", weather.GradientDefault.CSS()},
			wantMissing:  []string{`class="card"`},
		},
		{
			name: "network failure shows generic error",
			app: newTestApp(t,
				&stubGeocoder{err: errors.New("dial tcp: i/o timeout")},
				&stubForecaster{},
			),
			target:       "/?city=Paris",
			wantContains: []string{"something went wrong"},
			wantMissing:  []string{"i/o timeout", `class="card"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(tt.app, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			body := rec.Body.String()
			for _, s := range tt.wantContains {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.wantMissing {
				if strings.Contains(body, s) {
					t.Errorf("body unexpectedly contains %q", s)
				}
			}
		})
	}
}

func TestSwaggerRedirect(t *testing.T) {
	rec := serve(parisApp(t), "/swagger/")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
	if loc := rec.Header().Get("Location"); loc != "/swagger/index.html" {
		t.Errorf("Location = %q, want /swagger/index.html", loc)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	rec := serve(parisApp(t), "/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	for _, op := range []string{"get-weather", "get-display", "ping"} {
		if !strings.Contains(rec.Body.String(), op) {
			t.Errorf("OpenAPI document missing operation %q", op)
		}
	}
}
