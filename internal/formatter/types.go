package formatter

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LocationInfo struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

type CurrentConditions struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Weather     string  `json:"weather"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	WindDeg     float64 `json:"wind_deg"`
	Visibility  float64 `json:"visibility"`
	UVIndex     float64 `json:"uv_index"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
}

// CurrentWeather is the snapshot served by the current and coordinates endpoints.
type CurrentWeather struct {
	Location  LocationInfo      `json:"location"`
	Current   CurrentConditions `json:"current"`
	Timestamp string            `json:"timestamp"`
}

// DailyForecast summarises every 3-hour sample that falls on one local date.
type DailyForecast struct {
	Dt          int64   `json:"dt"`
	Time        string  `json:"time"`
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	Temp        float64 `json:"temp"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Weather     string  `json:"weather"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type ForecastResult struct {
	City    string          `json:"city"`
	Country string          `json:"country"`
	List    []DailyForecast `json:"list"`
}

type HourlyEntry struct {
	Dt          int64   `json:"dt"`
	Time        string  `json:"time"`
	Temp        float64 `json:"temp"`
	Weather     string  `json:"weather"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type HourlyResult struct {
	City    string        `json:"city"`
	Country string        `json:"country"`
	Hourly  []HourlyEntry `json:"hourly"`
}
