package weather

import (
	"context"
	"fmt"
	"strconv"
)

const celsiusSuffix = "°C"

type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Fetch makes exactly one upstream call and reshapes the answer.
func (s *Service) Fetch(ctx context.Context, city string) (Report, error) {
	cw, err := s.provider.Current(ctx, city)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch {
	case cw == nil:
		return Report{}, fmt.Errorf("%w: empty response", ErrUpstream)
	case cw.Name == nil:
		return Report{}, fmt.Errorf("%w: missing name", ErrUpstream)
	case cw.Main == nil || cw.Main.Temp == nil:
		return Report{}, fmt.Errorf("%w: missing main.temp", ErrUpstream)
	case len(cw.Weather) == 0:
		return Report{}, fmt.Errorf("%w: missing weather description", ErrUpstream)
	}

	return Report{
		City:        *cw.Name,
		Temperature: FormatCelsius(*cw.Main.Temp),
		Condition:   cw.Weather[0].Description,
	}, nil
}

// FormatCelsius renders t with the shortest exact decimal form, e.g. 18 -> "18°C".
func FormatCelsius(t float64) string {
	if t == 0 {
		// drop the sign of negative zero
		t = 0
	}
	return strconv.FormatFloat(t, 'f', -1, 64) + celsiusSuffix
}
