package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "rzp_test_key", cfg.Razorpay.KeyID)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("RAZORPAY_AMOUNT_PAISE", "")
	t.Setenv("AUTH_COOKIE_NAME", "")
	t.Setenv("PLAN_FREE_MAX_DOCUMENTS", "")

	cfg := Load()

	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, int64(10000), cfg.Razorpay.AmountPaise)
	assert.Equal(t, "INR", cfg.Razorpay.Currency)
	assert.Equal(t, "sb-access-token", cfg.Auth.CookieName)
	assert.Equal(t, 5, cfg.Plans.FreeMaxDocuments)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Kolkata"}
	loc := cfg.Location()
	assert.Equal(t, "Asia/Kolkata", loc.String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvInt64AndFloat(t *testing.T) {
	t.Setenv("TEST_INT64_VAR", "10737418240")
	assert.Equal(t, int64(10737418240), getEnvInt64("TEST_INT64_VAR", 0))

	t.Setenv("TEST_FLOAT_VAR", "2.5")
	assert.Equal(t, 2.5, getEnvFloat("TEST_FLOAT_VAR", 1))

	t.Setenv("TEST_FLOAT_VAR", "x")
	assert.Equal(t, 1.0, getEnvFloat("TEST_FLOAT_VAR", 1))
}
