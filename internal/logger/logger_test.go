package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, log)
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, log)
	})
}

func TestL_LazyInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	log = nil
	assert.NotNil(t, L())
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFrom(ctx))
	assert.Empty(t, SessionIDFrom(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithSessionID(ctx, "sess-1")

	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Equal(t, "sess-1", SessionIDFrom(ctx))
	assert.NotNil(t, FromCtx(ctx))
}
