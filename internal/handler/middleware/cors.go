package middleware

import (
	"log/slog"
	"slices"

	"library-lending/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	// cors rejects "*" together with credentials.
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	if !slices.Contains(corsCfg.ExposeHeaders, requestIDHeader) {
		corsCfg.ExposeHeaders = append(slices.Clone(corsCfg.ExposeHeaders), requestIDHeader)
	}

	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins, "AllowCredentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}
