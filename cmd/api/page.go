package main

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"weather-now/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is what templates/index.html renders
type pageData struct {
	Query      string
	Snapshot   *weather.Snapshot
	Error      string
	Loading    bool
	Glyph      string
	IconColor  template.CSS
	Background template.CSS
}

// handleIndex renders the widget. With ?city= it runs a search first and
// renders the resulting state; without it the idle page is shown.
func (app *App) handleIndex(c *gin.Context) {
	city, searched := c.GetQuery("city")

	controller := app.newController()
	if searched {
		if err := controller.Search(c.Request.Context(), city); err != nil && !isSearchError(err) {
			app.logger.Error("unexpected search failure", "error", err)
		}
	}

	c.HTML(http.StatusOK, "index.html", newPageData(controller.State()))
}

func newPageData(state weather.UiState) pageData {
	display := weather.NewDisplay(state.Snapshot)
	data := pageData{
		Query:      state.Query,
		Snapshot:   state.Snapshot,
		Loading:    state.Loading,
		Glyph:      display.Glyph,
		IconColor:  template.CSS(display.IconColor),
		Background: template.CSS(display.Background),
	}
	if state.Err != nil {
		data.Error = state.Err.Error()
	}
	return data
}

func isSearchError(err error) bool {
	var searchErr *weather.SearchError
	return errors.As(err, &searchErr)
}
