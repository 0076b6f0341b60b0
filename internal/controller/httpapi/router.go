package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	JWTSecret   string
	CORSOrigins []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", headerRequestID},
		ExposeHeaders: []string{headerRequestID},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true

	return cfg
}

// NewRouter wires middleware and routes.
func NewRouter(cfg RouterConfig, lockService LockService, db Pinger, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(AccessLog(logger))
	r.Use(Recovery(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	lock := NewScheduleLockHandler(lockService, logger)

	api := r.Group("/api", RequireRole(cfg.JWTSecret, logger, RoleAdmin))
	{
		api.Any("/schedule-lock", lock.ToggleLock)
		api.GET("/schedule-lock/status", lock.Status)
	}

	return r
}
