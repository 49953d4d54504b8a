package usecase

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Email modes reported by the health check
const (
	EmailModeResend        = "resend"
	EmailModeDryRun        = "dry_run"
	EmailModeNotConfigured = "not_configured"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	emailMode string
	redis     *redis.Client
}

// NewHealthUsecase reports on the email sender and the rate limit store.
// rdb may be nil when rate limiting runs in memory.
func NewHealthUsecase(emailMode string, rdb *redis.Client) HealthUsecase {
	return &healthUsecase{emailMode: emailMode, redis: rdb}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	checks := map[string]string{
		"status": "ok",
		"email":  u.emailMode,
	}
	if u.emailMode == EmailModeNotConfigured {
		checks["status"] = "degraded"
	}

	if u.redis == nil {
		checks["rate_limit_store"] = "memory"
		return checks
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := u.redis.Ping(ctx).Err(); err != nil {
		// Requests still pass through the in-memory fallback
		checks["rate_limit_store"] = "redis_unreachable"
		return checks
	}
	checks["rate_limit_store"] = "redis"
	return checks
}
