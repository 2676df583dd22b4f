package weather

import (
	"net/http"

	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

const msgFetchWeather = "Error fetching weather data"

type HTTPHandler struct {
	service *Service
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// Get handles GET /weather/{city}
// @Summary Current weather for a city
// @Tags weather
// @Produce json
// @Param city path string true "City name"
// @Success 200 {object} Report
// @Failure 500 {object} httpx.ErrorResponse
// @Router /weather/{city} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")

	report, err := h.service.Fetch(r.Context(), city)
	if err != nil {
		h.log.Error(msgFetchWeather,
			zap.Error(err),
			zap.String("city", city),
			zap.String("request_id", httpx.RequestIDFrom(r)),
		)
		httpx.JSONError(w, http.StatusInternalServerError, msgFetchWeather)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
