// Package formatter reshapes OpenWeatherMap responses into the schema served
// to the front end.
package formatter

import (
	"math"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"

	// MaxForecastDays caps the number of daily entries.
	MaxForecastDays = 5
	// MaxHourlySamples is 8 samples of 3 hours each.
	MaxHourlySamples = 8
)

// Formatter is stateless after construction and safe for concurrent use.
type Formatter struct {
	now func() time.Time
	loc *time.Location
}

type Option func(*Formatter)

// WithClock overrides the source of generation timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// WithLocation sets the zone used for wall-clock and calendar conversions.
// The process local zone is used otherwise, not the zone of the queried place.
func WithLocation(loc *time.Location) Option {
	return func(f *Formatter) {
		f.loc = loc
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatCurrent turns a current-weather body into a CurrentWeather snapshot.
func (f *Formatter) FormatCurrent(raw []byte) (*CurrentWeather, error) {
	p, err := DecodeCurrent(raw)
	if err != nil {
		return nil, err
	}

	cond := p.Weather[0]

	return &CurrentWeather{
		Location: LocationInfo{
			Name:    *p.Name,
			Country: *p.Sys.Country,
			Coordinates: Coordinates{
				Lat: *p.Coord.Lat,
				Lon: *p.Coord.Lon,
			},
		},
		Current: CurrentConditions{
			Temp:        round1(*p.Main.Temp),
			FeelsLike:   round1(*p.Main.FeelsLike),
			TempMin:     round1(*p.Main.TempMin),
			TempMax:     round1(*p.Main.TempMax),
			Humidity:    *p.Main.Humidity,
			Pressure:    *p.Main.Pressure,
			Weather:     *cond.Main,
			Description: *cond.Description,
			Icon:        *cond.Icon,
			WindSpeed:   *p.Wind.Speed,
			WindDeg:     deref(p.Wind.Deg),
			Visibility:  deref(p.Visibility) / 1000,
			UVIndex:     deref(p.UVI),
			Sunrise:     f.clock(*p.Sys.Sunrise),
			Sunset:      f.clock(*p.Sys.Sunset),
		},
		Timestamp: f.now().In(f.loc).Format(time.RFC3339Nano),
	}, nil
}

func (f *Formatter) localTime(unix int64) time.Time {
	return time.Unix(unix, 0).In(f.loc)
}

func (f *Formatter) clock(unix int64) string {
	return f.localTime(unix).Format(clockLayout)
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
