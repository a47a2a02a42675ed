// Package location decides whether a free-text location is a coordinate pair
// or a place name.
package location

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	PlaceName Kind = iota
	Coordinates
)

func (k Kind) String() string {
	if k == Coordinates {
		return "coordinates"
	}
	return "place_name"
}

// Query is the classified form of a location string. Name is set for
// PlaceName, Lat/Lon for Coordinates.
type Query struct {
	Kind Kind
	Name string
	Lat  float64
	Lon  float64
}

// decimal literal with optional sign, fraction and exponent; no hex, inf or nan
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func NewPlaceName(name string) Query {
	return Query{Kind: PlaceName, Name: name}
}

func NewCoordinates(lat, lon float64) Query {
	return Query{Kind: Coordinates, Lat: lat, Lon: lon}
}

func (q Query) IsCoordinates() bool {
	return q.Kind == Coordinates
}

func (q Query) String() string {
	if q.IsCoordinates() {
		return FormatCoordinate(q.Lat) + "," + FormatCoordinate(q.Lon)
	}
	return q.Name
}

// Classify never fails: anything that is not exactly two finite numbers
// separated by a comma is treated as a place name.
func Classify(input string) Query {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return NewPlaceName(input)
	}

	lat, ok := parseFinite(parts[0])
	if !ok {
		return NewPlaceName(input)
	}
	lon, ok := parseFinite(parts[1])
	if !ok {
		return NewPlaceName(input)
	}

	return NewCoordinates(lat, lon)
}

// FormatCoordinate renders a coordinate with the shortest exact representation.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberPattern.MatchString(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
