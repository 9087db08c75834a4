package types

import "fmt"

// Coords is a WGS84 latitude/longitude pair in decimal degrees
type Coords struct {
	Latitude  float64
	Longitude float64
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coords) String() string {
	return fmt.Sprintf("lat=%f, lon=%f", c.Latitude, c.Longitude)
}

// Location is a geocoded place resolved from a free-text city name
type Location struct {
	Coordinates Coords
	Name        string
	Country     string
	CountryCode string
	// Timezone is an IANA zone name, empty when the geocoder did not supply one
	Timezone string
}
