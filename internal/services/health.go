package services

import (
	"context"
	"fmt"

	"github.com/kshengbe-dot/This-Is-Us-Series/internal/cache"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/config"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Cache        string            `json:"cache"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(format string, args ...interface{}) {
	r.Status = "unhealthy"
	msg := fmt.Sprintf(format, args...)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
}

// HealthCheck checks the database, the authorizer (in authorizer mode) and the cache when configured
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, redis *cache.RedisCache, log zerolog.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:     "healthy",
		Authorizer: "disabled",
		Cache:      "disabled",
		Details:    make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail("Database connection error: %v", err)
		log.Error().Err(err).Msg("Health check failed - database connection")
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail("Database ping failed: %v", err)
		log.Error().Err(err).Msg("Health check failed - database ping")
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if cfg.AuthMode == config.AuthModeAuthorizer {
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			result.Authorizer = "unreachable"
			result.Details["authorizer_error"] = err.Error()
			result.fail("Authorizer ping failed: %v", err)
			log.Error().Err(err).Msg("Health check failed - authorizer ping")
		} else {
			result.Authorizer = "ok"
			result.Details["authorizer_url"] = cfg.AuthzURL
		}
	}

	if redis.Enabled() {
		if err := redis.Ping(ctx); err != nil {
			result.Cache = "unreachable"
			result.Details["cache_error"] = err.Error()
			result.fail("Cache ping failed: %v", err)
			log.Error().Err(err).Msg("Health check failed - cache ping")
		} else {
			result.Cache = "ok"
		}
	}

	if result.Status == "healthy" {
		log.Debug().Msg("Health check passed - all systems operational")
	}

	return result
}
