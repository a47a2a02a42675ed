package formatter

import (
	"math"
)

type dayGroup struct {
	date    string
	samples []ForecastSample
}

// orderedDays groups samples by date and iterates dates in first-seen order.
type orderedDays struct {
	keys   []string
	groups map[string]*dayGroup
}

func newOrderedDays() *orderedDays {
	return &orderedDays{groups: make(map[string]*dayGroup)}
}

func (o *orderedDays) add(date string, s ForecastSample) {
	g, ok := o.groups[date]
	if !ok {
		g = &dayGroup{date: date}
		o.groups[date] = g
		o.keys = append(o.keys, date)
	}
	g.samples = append(g.samples, s)
}

// first returns at most n groups in insertion order.
func (o *orderedDays) first(n int) []*dayGroup {
	if len(o.keys) < n {
		n = len(o.keys)
	}
	out := make([]*dayGroup, 0, n)
	for _, k := range o.keys[:n] {
		out = append(out, o.groups[k])
	}
	return out
}

// FormatForecast aggregates the 3-hour feed into at most five daily entries,
// ordered by the first appearance of each date in the feed.
func (f *Formatter) FormatForecast(raw []byte) (*ForecastResult, error) {
	p, err := DecodeForecast(raw)
	if err != nil {
		return nil, err
	}

	days := newOrderedDays()
	for _, s := range p.List {
		days.add(f.localTime(*s.Dt).Format(dateLayout), s)
	}

	result := &ForecastResult{
		City:    *p.City.Name,
		Country: *p.City.Country,
		List:    make([]DailyForecast, 0, MaxForecastDays),
	}
	for _, g := range days.first(MaxForecastDays) {
		result.List = append(result.List, f.summarize(g))
	}

	return result, nil
}

func (f *Formatter) summarize(g *dayGroup) DailyForecast {
	first := g.samples[0]
	firstAt := f.localTime(*first.Dt)

	var sum float64
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, s := range g.samples {
		sum += *s.Main.Temp
		lo = math.Min(lo, *s.Main.TempMin)
		hi = math.Max(hi, *s.Main.TempMax)
	}

	cond := dominantCondition(g.samples)

	return DailyForecast{
		Dt:          *first.Dt,
		Time:        firstAt.Format(clockLayout),
		Date:        g.date,
		Day:         firstAt.Weekday().String(),
		Temp:        round1(sum / float64(len(g.samples))),
		TempMin:     round1(lo),
		TempMax:     round1(hi),
		Weather:     *cond.Main,
		Description: *cond.Description,
		Icon:        *cond.Icon,
	}
}

// dominantCondition returns the condition of the first sample carrying the
// most frequent label. Among tied labels the one seen first wins.
func dominantCondition(samples []ForecastSample) Condition {
	counts := make(map[string]int)
	var order []string
	for _, s := range samples {
		label := *s.Weather[0].Main
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}

	for _, s := range samples {
		if *s.Weather[0].Main == best {
			return s.Weather[0]
		}
	}
	return samples[0].Weather[0]
}

// FormatHourly returns the first eight raw samples of the forecast feed.
// They follow the provider's own schedule, so they cover roughly, not
// exactly, the next 24 hours.
func (f *Formatter) FormatHourly(raw []byte) (*HourlyResult, error) {
	p, err := DecodeForecast(raw)
	if err != nil {
		return nil, err
	}

	samples := p.List
	if len(samples) > MaxHourlySamples {
		samples = samples[:MaxHourlySamples]
	}

	result := &HourlyResult{
		City:    *p.City.Name,
		Country: *p.City.Country,
		Hourly:  make([]HourlyEntry, 0, len(samples)),
	}
	for _, s := range samples {
		cond := s.Weather[0]
		result.Hourly = append(result.Hourly, HourlyEntry{
			Dt:          *s.Dt,
			Time:        f.clock(*s.Dt),
			Temp:        *s.Main.Temp,
			Weather:     *cond.Main,
			Description: *cond.Description,
			Icon:        *cond.Icon,
		})
	}

	return result, nil
}
