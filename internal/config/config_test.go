package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "disk", cfg.Files.Driver)
	assert.Equal(t, "uploads", cfg.Files.UploadDir)
	assert.Equal(t, int64(25<<20), cfg.Files.MaxUploadBytes())
	assert.Empty(t, cfg.RabbitMQ.URI)
	assert.Equal(t, "jwt", cfg.Auth.Provider)
	assert.Equal(t, 5*time.Second, cfg.Auth.RemoteTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestFromEnv_NoDefaultJWTSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg := FromEnv()
	assert.Empty(t, cfg.Auth.JWTSecret)

	t.Setenv("JWT_SECRET", "s3cr3t")
	cfg = FromEnv()
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("READ_TIMEOUT", "7")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("AUTH_PROVIDER", "Remote")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:19006, https://app.example.com,")

	cfg := FromEnv()

	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, int64(5<<20), cfg.Files.MaxUploadBytes())
	assert.Equal(t, 7*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, "remote", cfg.Auth.Provider)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, []string{"http://localhost:19006", "https://app.example.com"}, cfg.Server.AllowedOrigins)
}

func TestFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")
	t.Setenv("WRITE_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, int64(25), cfg.Files.MaxUploadMB)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}
