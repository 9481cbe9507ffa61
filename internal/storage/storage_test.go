package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/config"
)

func TestPublicBase(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{
			name: "explicit public url wins",
			cfg:  config.S3Config{Bucket: "b", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/",
		},
		{
			name: "custom endpoint is path style",
			cfg:  config.S3Config{Bucket: "b", Endpoint: "http://minio:9000/"},
			want: "http://minio:9000/b",
		},
		{
			name: "aws virtual host",
			cfg:  config.S3Config{Bucket: "b", Region: "sa-east-1"},
			want: "https://b.s3.sa-east-1.amazonaws.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBase(tt.cfg))
		})
	}
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://cdn/x/logo.webp", joinURL("https://cdn/x/", "/logo.webp"))
}

func TestMemory(t *testing.T) {
	m := &Memory{BaseURL: "http://local"}

	url, err := m.Put(context.Background(), "logos/1.webp", "image/webp", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "http://local/logos/1.webp", url)

	got, ok := m.Get("logos/1.webp")
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), got)
}

func TestNewS3(t *testing.T) {
	s := NewS3(config.S3Config{
		Bucket: "logos", Region: "us-east-1", Endpoint: "http://localhost:9000",
		AccessKeyID: "k", SecretAccessKey: "s",
	})
	assert.Equal(t, "logos", s.bucket)
	assert.Equal(t, "http://localhost:9000/logos", s.base)
}
