package weather

import (
	"context"

	"bookshelf/internal/platform/openweather"
)

//go:generate mockgen -source=ports.go -destination=mock_provider.go -package=weather

// Provider fetches raw current conditions for a city.
type Provider interface {
	Current(ctx context.Context, city string) (*openweather.CurrentWeather, error)
}
