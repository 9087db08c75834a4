package openmeteo

type GeocodingAPIResponse struct {
	Results          []GeocodingResult `json:"results"`
	GenerationtimeMs float64           `json:"generationtime_ms"`
}

type GeocodingResult struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Elevation   float64 `json:"elevation"`
	FeatureCode string  `json:"feature_code"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country"`
	Admin1      string  `json:"admin1"`
	Timezone    string  `json:"timezone"`
	Population  int     `json:"population"`
}

type ForecastAPIResponse struct {
	Latitude             float64             `json:"latitude"`
	Longitude            float64             `json:"longitude"`
	GenerationtimeMs     float64             `json:"generationtime_ms"`
	UtcOffsetSeconds     int                 `json:"utc_offset_seconds"`
	Timezone             string              `json:"timezone"`
	TimezoneAbbreviation string              `json:"timezone_abbreviation"`
	Elevation            float64             `json:"elevation"`
	CurrentWeatherUnits  CurrentWeatherUnits `json:"current_weather_units"`
	CurrentWeather       *CurrentWeather     `json:"current_weather"`
}

type CurrentWeatherUnits struct {
	Time          string `json:"time"`
	Interval      string `json:"interval"`
	Temperature   string `json:"temperature"`
	Windspeed     string `json:"windspeed"`
	Winddirection string `json:"winddirection"`
	IsDay         string `json:"is_day"`
	Weathercode   string `json:"weathercode"`
}

type CurrentWeather struct {
	Time          string  `json:"time"`
	Interval      int     `json:"interval"`
	Temperature   float64 `json:"temperature"`
	Windspeed     float64 `json:"windspeed"`
	Winddirection float64 `json:"winddirection"`
	IsDay         int     `json:"is_day"`
	Weathercode   int     `json:"weathercode"`
}
