package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is 2024-03-04 00:00 UTC.
var monday = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

type sampleSpec struct {
	at   time.Time
	temp float64
	min  float64
	max  float64
	main string
	desc string
	icon string
}

func sample(at time.Time, temp float64, main string) sampleSpec {
	return sampleSpec{at: at, temp: temp, min: temp - 1, max: temp + 1, main: main, desc: "desc " + main, icon: "01d"}
}

func forecastFixture(samples ...sampleSpec) map[string]interface{} {
	list := make([]interface{}, 0, len(samples))
	for _, s := range samples {
		list = append(list, map[string]interface{}{
			"dt": s.at.Unix(),
			"main": map[string]interface{}{
				"temp":     s.temp,
				"temp_min": s.min,
				"temp_max": s.max,
			},
			"weather": []interface{}{
				map[string]interface{}{"main": s.main, "description": s.desc, "icon": s.icon},
			},
		})
	}
	return map[string]interface{}{
		"city": map[string]interface{}{"name": "Berlin", "country": "DE"},
		"list": list,
	}
}

// everyThreeHours yields n samples starting at from.
func everyThreeHours(from time.Time, n int) []sampleSpec {
	out := make([]sampleSpec, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sample(from.Add(time.Duration(3*i)*time.Hour), float64(i), "Clear"))
	}
	return out
}

func TestFormatForecast_TruncatesToFiveDays(t *testing.T) {
	f := newTestFormatter()

	// 40 samples starting at 12:00 span six calendar dates
	raw := mustJSON(t, forecastFixture(everyThreeHours(monday.Add(12*time.Hour), 40)...))

	got, err := f.FormatForecast(raw)
	require.NoError(t, err)

	assert.Equal(t, "Berlin", got.City)
	assert.Equal(t, "DE", got.Country)
	require.Len(t, got.List, 5)

	wantDates := []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08"}
	wantDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	for i, d := range got.List {
		assert.Equal(t, wantDates[i], d.Date)
		assert.Equal(t, wantDays[i], d.Day)
	}
}

func TestFormatForecast_FirstSeenDateOrder(t *testing.T) {
	f := newTestFormatter()

	wed := monday.AddDate(0, 0, 2)
	tue := monday.AddDate(0, 0, 1)
	raw := mustJSON(t, forecastFixture(
		sample(wed.Add(9*time.Hour), 10, "Clear"),
		sample(monday.Add(9*time.Hour), 20, "Rain"),
		sample(wed.Add(12*time.Hour), 14, "Clear"),
		sample(tue.Add(9*time.Hour), 30, "Snow"),
	))

	got, err := f.FormatForecast(raw)
	require.NoError(t, err)
	require.Len(t, got.List, 3)

	assert.Equal(t, "2024-03-06", got.List[0].Date)
	assert.Equal(t, "2024-03-04", got.List[1].Date)
	assert.Equal(t, "2024-03-05", got.List[2].Date)

	// samples of a date join its group even when they arrive later
	assert.Equal(t, 12.0, got.List[0].Temp)
}

func TestFormatForecast_DailyAggregate(t *testing.T) {
	f := newTestFormatter()

	raw := mustJSON(t, forecastFixture(
		sampleSpec{at: monday.Add(6 * time.Hour), temp: 10, min: 8.04, max: 11, main: "Clouds", desc: "few clouds", icon: "02d"},
		sampleSpec{at: monday.Add(9 * time.Hour), temp: 12, min: 9, max: 13.26, main: "Clouds", desc: "overcast clouds", icon: "04d"},
		sampleSpec{at: monday.Add(12 * time.Hour), temp: 13, min: 12, max: 13.1, main: "Rain", desc: "light rain", icon: "10d"},
	))

	got, err := f.FormatForecast(raw)
	require.NoError(t, err)
	require.Len(t, got.List, 1)

	day := got.List[0]
	assert.Equal(t, monday.Add(6*time.Hour).Unix(), day.Dt)
	assert.Equal(t, "06:00", day.Time)
	assert.Equal(t, 11.7, day.Temp)
	assert.Equal(t, 8.0, day.TempMin)
	assert.Equal(t, 13.3, day.TempMax)
	assert.Equal(t, "Clouds", day.Weather)
	assert.Equal(t, "few clouds", day.Description)
	assert.Equal(t, "02d", day.Icon)
}

func TestFormatForecast_DominantCondition(t *testing.T) {
	tests := []struct {
		name       string
		conditions []string
		want       string
	}{
		{"majority", []string{"Rain", "Rain", "Clear"}, "Rain"},
		{"majority late", []string{"Clear", "Rain", "Rain"}, "Rain"},
		{"tie goes to first seen", []string{"Rain", "Clear"}, "Rain"},
		{"tie with interleaving", []string{"Clear", "Rain", "Rain", "Clear"}, "Clear"},
		{"single", []string{"Snow"}, "Snow"},
	}

	f := newTestFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]sampleSpec, 0, len(tt.conditions))
			for i, c := range tt.conditions {
				samples = append(samples, sample(monday.Add(time.Duration(3*i)*time.Hour), 5, c))
			}

			got, err := f.FormatForecast(mustJSON(t, forecastFixture(samples...)))
			require.NoError(t, err)
			require.Len(t, got.List, 1)
			assert.Equal(t, tt.want, got.List[0].Weather)
			assert.Equal(t, "desc "+tt.want, got.List[0].Description)
		})
	}
}

func TestFormatForecast_EmptyList(t *testing.T) {
	f := newTestFormatter()

	got, err := f.FormatForecast(mustJSON(t, forecastFixture()))
	require.NoError(t, err)
	assert.NotNil(t, got.List)
	assert.Empty(t, got.List)
}

func TestFormatForecast_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]interface{})
	}{
		{"missing city", func(m map[string]interface{}) { delete(m, "city") }},
		{"missing country", func(m map[string]interface{}) { delete(m["city"].(map[string]interface{}), "country") }},
		{"missing list", func(m map[string]interface{}) { delete(m, "list") }},
		{"missing dt", func(m map[string]interface{}) {
			delete(m["list"].([]interface{})[1].(map[string]interface{}), "dt")
		}},
		{"missing temp_max", func(m map[string]interface{}) {
			s := m["list"].([]interface{})[0].(map[string]interface{})
			delete(s["main"].(map[string]interface{}), "temp_max")
		}},
		{"missing weather", func(m map[string]interface{}) {
			delete(m["list"].([]interface{})[0].(map[string]interface{}), "weather")
		}},
		{"dt as string", func(m map[string]interface{}) {
			m["list"].([]interface{})[0].(map[string]interface{})["dt"] = "yesterday"
		}},
	}

	f := newTestFormatter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := forecastFixture(everyThreeHours(monday, 3)...)
			tt.mutate(fixture)
			raw := mustJSON(t, fixture)

			_, err := f.FormatForecast(raw)
			assert.ErrorIs(t, err, ErrMalformedUpstreamData)

			_, err = f.FormatHourly(raw)
			assert.ErrorIs(t, err, ErrMalformedUpstreamData)
		})
	}
}

func TestFormatHourly_FirstEightVerbatim(t *testing.T) {
	f := newTestFormatter()

	samples := everyThreeHours(monday.Add(2*time.Hour), 12)
	samples[0].temp = 12.345
	samples[3].main = "Thunderstorm"

	got, err := f.FormatHourly(mustJSON(t, forecastFixture(samples...)))
	require.NoError(t, err)

	assert.Equal(t, "Berlin", got.City)
	assert.Equal(t, "DE", got.Country)
	require.Len(t, got.Hourly, 8)

	for i, h := range got.Hourly {
		assert.Equal(t, samples[i].at.Unix(), h.Dt)
		assert.Equal(t, samples[i].temp, h.Temp)
		assert.Equal(t, samples[i].main, h.Weather)
		assert.Equal(t, samples[i].at.Format("15:04"), h.Time)
	}
	assert.Equal(t, 12.345, got.Hourly[0].Temp)
	assert.Equal(t, "Thunderstorm", got.Hourly[3].Weather)
}

func TestFormatHourly_ShortFeed(t *testing.T) {
	f := newTestFormatter()

	got, err := f.FormatHourly(mustJSON(t, forecastFixture(everyThreeHours(monday, 3)...)))
	require.NoError(t, err)
	assert.Len(t, got.Hourly, 3)
}

func TestFormatForecast_UsesFormatterLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := New(WithLocation(tokyo))

	// 20:00 UTC on Monday is 05:00 Tuesday in JST
	raw := mustJSON(t, forecastFixture(sample(monday.Add(20*time.Hour), 1, "Clear")))

	got, err := f.FormatForecast(raw)
	require.NoError(t, err)
	require.Len(t, got.List, 1)
	assert.Equal(t, "2024-03-05", got.List[0].Date)
	assert.Equal(t, "Tuesday", got.List[0].Day)
	assert.Equal(t, "05:00", got.List[0].Time)
}
