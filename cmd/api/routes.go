package main

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/httpx"
	"bookshelf/internal/store"
	"bookshelf/internal/weather"

	"go.uber.org/zap"
)

type dependencies struct {
	store          store.Store
	weather        weather.Provider
	logger         *zap.Logger
	maxBodyBytes   int64
	allowedOrigins []string
	enableHSTS     bool
}

func newRouter(deps dependencies) http.Handler {
	bookHandler := book.NewHTTPHandler(book.NewService(deps.store), deps.logger)
	weatherHandler := weather.NewHTTPHandler(weather.NewService(deps.weather), deps.logger)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := deps.store.Ping(ctx); err != nil {
			deps.logger.Warn("readiness check failed", zap.Error(err))
			httpx.JSONError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("POST /books", bookHandler.Create)
	router.HandleFunc("GET /books/{id}", bookHandler.Get)
	router.HandleFunc("PUT /books/{id}", bookHandler.Update)
	router.HandleFunc("DELETE /books/{id}", bookHandler.Delete)

	router.HandleFunc("GET /weather/{city}", weatherHandler.Get)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(deps.logger),
		httpx.RecoveryMiddleware(deps.logger),
		httpx.SecurityHeadersMiddleware(deps.enableHSTS),
		httpx.CORSMiddleware(deps.allowedOrigins),
		httpx.RequestSizeLimitMiddleware(deps.maxBodyBytes),
		httpx.RouterErrorsMiddleware,
	)
}
