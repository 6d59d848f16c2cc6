package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/core/ports"
)

// lockKey takes the cross-process lock for key when a locker is configured.
// The unique index is the real guarantee, so a lock failure is logged and the
// upsert proceeds without it.
func lockKey(ctx context.Context, locker ports.KeyLocker, key string, log zerolog.Logger) func() {
	if locker == nil {
		return func() {}
	}
	release, err := locker.Acquire(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("upsert lock unavailable, relying on unique index")
		return func() {}
	}
	return release
}
