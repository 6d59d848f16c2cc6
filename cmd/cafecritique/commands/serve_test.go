package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cafecritique/review-api/internal/pkg/config"
)

func TestOpenLocker_RedisUnavailable(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	locker, check, closeFn := openLocker(context.Background(), config.RedisConfig{Addr: "redis://cache:6379/notadb"}, log)

	// must be a nil interface so lockKey skips locking
	assert.True(t, locker == nil)
	assert.Nil(t, check)
	assert.NotPanics(t, closeFn)
	assert.Contains(t, buf.String(), "upserts run without the lock")
}
