package model

// Weather is a current-conditions snapshot at a team's location.
type Weather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Clouds      int     `json:"clouds"`
}

// TeamLocation is one entry of the team map payload: where the team plays,
// who is registered on it, and the weather there right now.
type TeamLocation struct {
	Team         string   `json:"team"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Stadium      string   `json:"stadium"`
	Conference   string   `json:"conference"`
	Division     string   `json:"division"`
	PlayersCount int      `json:"players_count"`
	Players      []string `json:"players"`
	Weather      *Weather `json:"weather,omitempty"`
}

// HasCoordinates reports whether the location can be placed on the map.
// The backend uses zero coordinates for teams it could not geocode.
func (t TeamLocation) HasCoordinates() bool {
	return t.Latitude != 0 && t.Longitude != 0
}
