package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"library-lending/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	ctxRequestIDKey = "request_id"
	maxRequestIDLen = 64
)

type Logger struct {
	logger   *slog.Logger
	timezone *time.Location
}

func NewLogger(cfg config.LogConfig) *Logger {
	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(slog.String("service", "library-lending"))
	slog.SetDefault(logger)

	return &Logger{logger: logger, timezone: timezone}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware tags every request with an id and logs one line when it completes.
// Health checks only log at debug level.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := inboundRequestID(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = l.generateRequestID()
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		}
		// auth runs inside the chain, so the actor is only known after Next
		if actor, ok := GetActor(c); ok {
			attrs = append(attrs, slog.String("user_id", actor.ID.String()), slog.String("role", actor.Role.String()))
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case route == "/health":
			level = slog.LevelDebug
		}

		l.logger.LogAttrs(c.Request.Context(), level, "Request completed", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

// inboundRequestID accepts a caller supplied id only if it is short and header safe.
func inboundRequestID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxRequestIDLen {
		return ""
	}
	for _, r := range v {
		ok := r == '-' || r == '_' || r == '.' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !ok {
			return ""
		}
	}
	return v
}

func (l *Logger) generateRequestID() string {
	timestamp := time.Now().In(l.timezone).Format("20060102150405")

	randomBytes := make([]byte, 6)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s-fallback-%d", timestamp, time.Now().UnixNano()%100000000)
	}
	return timestamp + "-" + hex.EncodeToString(randomBytes)
}
