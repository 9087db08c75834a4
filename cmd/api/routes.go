package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	// Weather endpoints
	huma.Register(app.api, huma.Operation{
		OperationID: "get-weather",
		Method:      http.MethodGet,
		Path:        "/api/v1/weather",
		Summary:     "Look up current weather for a city",
		Description: "Geocode the city name, fetch current conditions for the first match and derive the display icon and background",
		Tags:        []string{"weather"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusBadGateway},
	}, app.handleGetWeather)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-display",
		Method:      http.MethodGet,
		Path:        "/api/v1/weather/display",
		Summary:     "Display mapping for a weather code",
		Description: "Return the condition, icon and background gradient used for a WMO weather code",
		Tags:        []string{"weather"},
	}, app.handleGetDisplay)

	// Widget page
	app.router.GET("/", app.handleIndex)

	// Swagger UI over the OpenAPI document Huma serves
	app.router.GET("/swagger/*any", func(c *gin.Context) {
		path := c.Param("any")
		if path == "/" {
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json"))(c)
	})
}
