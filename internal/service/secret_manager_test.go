package service

import (
	"context"
	"testing"

	"coursehub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveJWTKey(t *testing.T) {
	ctx := context.Background()
	const resource = "projects/p/secrets/jwt/versions/latest"
	secrets := &fakeSecrets{values: map[string]string{resource: "from-secret-manager"}}

	key, err := ResolveJWTKey(ctx, &config.Config{JWTSecret: "local"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", key)

	key, err = ResolveJWTKey(ctx, &config.Config{JWTSecret: "local", JWTSecretResource: resource}, secrets)
	require.NoError(t, err)
	assert.Equal(t, "from-secret-manager", key)

	_, err = ResolveJWTKey(ctx, &config.Config{}, nil)
	assert.Error(t, err)

	_, err = ResolveJWTKey(ctx, &config.Config{JWTSecretResource: resource}, nil)
	assert.Error(t, err)

	_, err = ResolveJWTKey(ctx, &config.Config{JWTSecretResource: "projects/p/secrets/other/versions/1"}, secrets)
	assert.ErrorIs(t, err, errBoom)
}
