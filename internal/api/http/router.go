package http

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"memo-service/internal/api/http/middleware"
	"memo-service/internal/api/swagger"
	"memo-service/internal/config"
)

// NewRouter собирает mux с маршрутами заметок и middleware.
// Применение middleware (изнутри наружу):
// 1. Auth (проверяет токен, только для маршрутов заметок)
// 2. Rate Limiting (ограничивает количество запросов, в том числе отклоненных)
// 3. Logging (логирует все запросы, включая 401 и 429)
// 4. CORS (обработка CORS заголовков, самый внешний слой для preflight)
// Описание API (swagger.json) доступно без токена.
func NewRouter(h *Handler, cfg *config.ConfigGateway, authToken string, logger *zap.Logger) http.Handler {
	origins := parseOrigins(cfg.CORSAllowedOrigins)
	h.AllowOrigins(origins)

	mux := http.NewServeMux()
	h.Register(mux)

	root := http.NewServeMux()
	swagger.Register(root)
	root.Handle("/", middleware.Auth(authToken)(mux))

	var handler http.Handler = root
	handler = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = setupCORS(origins, cfg.CORSMaxAge).Handler(handler)

	logger.Info("HTTP API configured",
		zap.String("cors_origins", cfg.CORSAllowedOrigins),
		zap.Bool("auth", authToken != ""),
	)
	return handler
}

func parseOrigins(list string) []string {
	var origins []string
	for _, origin := range strings.Split(list, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(origins []string, maxAge int) *cors.Cors {
	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
		},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}
