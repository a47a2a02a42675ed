package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedUpstreamData is returned when the provider's JSON lacks a
// required field or carries one with the wrong type.
var ErrMalformedUpstreamData = errors.New("malformed upstream data")

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Required upstream values are pointers so that an absent key and a zero
// value can be told apart. Optional values document their default.

type Coord struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}

type Condition struct {
	Main        *string `json:"main" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Icon        *string `json:"icon" validate:"required"`
}

type CurrentMain struct {
	Temp      *float64 `json:"temp" validate:"required"`
	FeelsLike *float64 `json:"feels_like" validate:"required"`
	TempMin   *float64 `json:"temp_min" validate:"required"`
	TempMax   *float64 `json:"temp_max" validate:"required"`
	Humidity  *float64 `json:"humidity" validate:"required"`
	Pressure  *float64 `json:"pressure" validate:"required"`
}

type CurrentSys struct {
	Country *string `json:"country" validate:"required"`
	Sunrise *int64  `json:"sunrise" validate:"required"`
	Sunset  *int64  `json:"sunset" validate:"required"`
}

type Wind struct {
	Speed *float64 `json:"speed" validate:"required"`
	// Deg defaults to 0.
	Deg *float64 `json:"deg"`
}

// CurrentPayload is the body of GET /weather.
type CurrentPayload struct {
	Name    *string      `json:"name" validate:"required"`
	Coord   *Coord       `json:"coord" validate:"required"`
	Sys     *CurrentSys  `json:"sys" validate:"required"`
	Main    *CurrentMain `json:"main" validate:"required"`
	Weather []Condition  `json:"weather" validate:"required,min=1,dive"`
	Wind    *Wind        `json:"wind" validate:"required"`
	// Visibility is in metres and defaults to 0.
	Visibility *float64 `json:"visibility"`
	// UVI defaults to 0; the current endpoint rarely carries it.
	UVI *float64 `json:"uvi"`
}

type SampleMain struct {
	Temp    *float64 `json:"temp" validate:"required"`
	TempMin *float64 `json:"temp_min" validate:"required"`
	TempMax *float64 `json:"temp_max" validate:"required"`
}

// ForecastSample is one 3-hour entry of the forecast feed.
type ForecastSample struct {
	Dt      *int64      `json:"dt" validate:"required"`
	Main    *SampleMain `json:"main" validate:"required"`
	Weather []Condition `json:"weather" validate:"required,min=1,dive"`
}

type ForecastCity struct {
	Name    *string `json:"name" validate:"required"`
	Country *string `json:"country" validate:"required"`
}

// ForecastPayload is the body of GET /forecast. An empty list is valid.
type ForecastPayload struct {
	City *ForecastCity    `json:"city" validate:"required"`
	List []ForecastSample `json:"list" validate:"required,dive"`
}

func DecodeCurrent(raw []byte) (*CurrentPayload, error) {
	var p CurrentPayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func DecodeForecast(raw []byte) (*ForecastPayload, error) {
	var p ForecastPayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decode(raw []byte, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedUpstreamData, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedUpstreamData, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
