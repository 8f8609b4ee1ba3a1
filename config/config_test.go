package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvOnlyConfiguration(t *testing.T) {
	t.Setenv("APP_ENV", "nonexistent")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRETKEY_ACCESS", "test-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "test-secret", cfg.SecretKey.Access)
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "nonexistent")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRETKEY_ACCESS", "test-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "face_login_db", cfg.Mongo.Database)
	assert.Equal(t, 5, cfg.Mongo.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Mongo.RetryDelay)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.Mongo.SocketTimeout)
	assert.Equal(t, 60*time.Second, cfg.Mongo.HealthCheckInterval)
	assert.Equal(t, 30*time.Minute, cfg.Token.TTL)
	assert.InDelta(t, 0.6, cfg.FaceEncoder.Tolerance, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Auth.LoginDeadline)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestNew_MissingStoreURI(t *testing.T) {
	t.Setenv("APP_ENV", "nonexistent")
	t.Setenv("MONGO_URI", "")
	t.Setenv("SECRETKEY_ACCESS", "test-secret")

	cfg, err := New()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "mongo.uri")
}

func TestNew_MissingSecret(t *testing.T) {
	t.Setenv("APP_ENV", "nonexistent")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRETKEY_ACCESS", "")

	cfg, err := New()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "secretKey.access")
}

func TestNew_EnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("APP_ENV", "nonexistent")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SECRETKEY_ACCESS", "test-secret")
	t.Setenv("MONGO_MAXRETRIES", "9")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Mongo.MaxRetries)
	assert.Equal(t, 15*time.Minute, cfg.Token.TTL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}
