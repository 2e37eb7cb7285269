package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuehongzhang001/ark/internal/infra/database/postgres"
	"github.com/yuehongzhang001/ark/internal/pkg/config"
)

func TestNewPool(t *testing.T) {
	// Skip if no database available
	t.Skip("Integration test - requires PostgreSQL")

	ctx := context.Background()

	cfg, err := config.Load()
	assert.NoError(t, err)

	pool, err := postgres.NewPool(ctx, cfg)
	assert.NoError(t, err)
	assert.NotNil(t, pool)

	defer pool.Close()

	err = pool.Ping(ctx)
	assert.NoError(t, err)
}
