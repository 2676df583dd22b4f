package weather

import (
	"errors"
)

// ErrUpstream wraps every failure of the upstream weather API.
var ErrUpstream = errors.New("weather upstream error")

// Report is the reshaped upstream response. It is never persisted.
type Report struct {
	City        string `json:"city"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
}
