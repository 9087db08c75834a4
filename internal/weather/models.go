package weather

// Snapshot is the last successfully resolved weather result for a query.
// Snapshots are replaced wholesale and never mutated after creation.
type Snapshot struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature" doc:"Temperature in °C"`
	Windspeed   float64 `json:"windspeed" doc:"Wind speed in km/h"`
	Weathercode int     `json:"weathercode" doc:"WMO weather code"`
	Description string  `json:"description" doc:"WMO description of the weather code"`
	Timezone    string  `json:"timezone,omitempty" doc:"IANA timezone of the city"`
}

// UiState is the controller-owned state driving what the widget renders.
// Err and Snapshot are never both set once Loading is false.
type UiState struct {
	Query    string
	Snapshot *Snapshot
	Err      error
	Loading  bool
}

// SearchError is one of the fixed failure kinds a search can end in
type SearchError struct {
	Kind    string
	Message string
}

func (e *SearchError) Error() string {
	return e.Message
}

var (
	ErrEmptyQuery   = &SearchError{Kind: "EmptyQuery", Message: "please enter a city"}
	ErrCityNotFound = &SearchError{Kind: "CityNotFound", Message: "city not found"}

	// ErrNetwork covers every transport or parse failure; the cause is logged, not exposed
	ErrNetwork = &SearchError{Kind: "NetworkError", Message: "something went wrong"}
)
