package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"sharescribe/internal/config"
)

func TestNewMinIO_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewMinIO(ctx, config.MinIOConfig{})
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000"})
	assert.EqualError(t, err, "minio credentials are required")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	assert.EqualError(t, err, "minio bucket is required")
}

func TestPresignParams(t *testing.T) {
	assert.Empty(t, PresignParams(""))

	p := PresignParams(`annual "report".pdf`)
	assert.Equal(t, `attachment; filename="annual report.pdf"`, p.Get("response-content-disposition"))
}
