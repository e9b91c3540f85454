package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/mkravets/shortener/internal/handlers"
	"github.com/mkravets/shortener/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(middleware.GzipMiddleware)            // Gzip-сжатие
	r.Use(middleware.MetricsMiddleware)

	r.Post("/create-short", handler.CreateShort)
	r.Post("/api/shorten", handler.ReceiveShorten)
	r.Get("/ping", handler.PingHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/{code}", handler.ResponseURL)
	return r
}
