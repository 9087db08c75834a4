package main

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"

	"weather-now/internal/config"
	"weather-now/internal/providers/openmeteo"
	"weather-now/internal/timezone"
	"weather-now/internal/weather"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router            *gin.Engine
	api               huma.API
	logger            *slog.Logger
	geocoder          weather.Geocoder
	forecaster        weather.Forecaster
	controllerOptions []weather.Option
}

// NewApp creates a new application wired to the Open-Meteo providers from configuration
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Timeout 0 leaves outbound calls unbounded
	httpClient := &http.Client{Timeout: cfg.Providers.Timeout}

	geocoderOpts := []openmeteo.ClientOption{
		openmeteo.WithHTTPClient(httpClient),
		openmeteo.WithBaseURL(cfg.Providers.GeocodingURL),
	}
	forecasterOpts := []openmeteo.ClientOption{
		openmeteo.WithHTTPClient(httpClient),
		openmeteo.WithBaseURL(cfg.Providers.ForecastURL),
	}

	if cb := cfg.Providers.CircuitBreaker; cb.Enabled {
		geocoderOpts = append(geocoderOpts, openmeteo.WithCircuitBreaker(
			openmeteo.NewCircuitBreaker("openmeteo-geocoding", cb.MaxRequests, cb.Interval, cb.Timeout, logger),
		))
		forecasterOpts = append(forecasterOpts, openmeteo.WithCircuitBreaker(
			openmeteo.NewCircuitBreaker("openmeteo-forecast", cb.MaxRequests, cb.Interval, cb.Timeout, logger),
		))
	}

	geocoder := openmeteo.NewGeocodingClient(logger, geocoderOpts...)
	geocoder.SetResultOptions(cfg.Providers.GeocodingCount, cfg.Providers.Language)
	forecaster := openmeteo.NewForecastClient(logger, forecasterOpts...)

	resolver, err := timezone.NewResolver()
	if err != nil {
		return nil, err
	}

	return NewAppWithProviders(cfg, logger, geocoder, forecaster, weather.WithTimezoneResolver(resolver))
}

// NewAppWithProviders creates an application with custom providers.
// This is useful for testing with mock providers.
func NewAppWithProviders(
	cfg *config.Config,
	logger *slog.Logger,
	geocoder weather.Geocoder,
	forecaster weather.Forecaster,
	opts ...weather.Option,
) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// Create Huma API on top of the Gin router
	humaConfig := huma.DefaultConfig("Weather Now API", "1.0.0")
	humaConfig.Info.Description = "Current weather lookup by city name"
	humaConfig.Servers = []*huma.Server{
		{URL: "http://localhost" + cfg.GetServerAddr(), Description: "Development server"},
	}

	app := &App{
		router:            router,
		api:               humagin.New(router, humaConfig),
		logger:            logger,
		geocoder:          geocoder,
		forecaster:        forecaster,
		controllerOptions: opts,
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized")

	return app, nil
}

// newController returns a controller for one lookup session
func (app *App) newController() *weather.Controller {
	return weather.NewController(app.geocoder, app.forecaster, app.logger, app.controllerOptions...)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs each request through slog
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("handled request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
