package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/primemotors/inventory-service/internal/config"
)

func TestNewRedis_PingsServer(t *testing.T) {
	srv := miniredis.RunT(t)

	r := NewRedis(context.Background(), config.RedisConfig{Addr: srv.Addr()}, zap.NewNop())
	t.Cleanup(r.Close)

	require.NoError(t, r.Ping(context.Background()))
}

func TestNewRedis_UnreachableIsNotFatal(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	t.Cleanup(r.Close)

	assert.Error(t, r.Ping(context.Background()))
}

func TestPing_Unconfigured(t *testing.T) {
	var r *Redis
	assert.Error(t, r.Ping(context.Background()))

	var pg *Postgres
	assert.Error(t, pg.Ping(context.Background()))
}
