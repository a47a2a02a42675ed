package handlers

// CoordinatesRequest holds the parsed lat/lon query of the coordinates endpoint.
type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// ErrorResponse never carries upstream details.
type ErrorResponse struct {
	Error string `json:"error" validate:"required,min=1,max=500"`
	Code  string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
}

type HealthResponse struct {
	Status    string `json:"status" validate:"required,oneof=healthy alive ready"`
	Timestamp string `json:"timestamp" validate:"required"`
	Version   string `json:"version,omitempty"`
	Uptime    string `json:"uptime,omitempty"`
}

const (
	CodeMissingParams = "MISSING_PARAMS"
	CodeInvalidParams = "INVALID_PARAMS"
	CodeFetchFailed   = "FETCH_FAILED"
	CodeNotFound      = "NOT_FOUND"
	CodeInternal      = "INTERNAL_ERROR"
)
