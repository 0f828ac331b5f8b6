package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"graphblog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real MinIO when MINIO_TEST_ENDPOINT is set.
func TestMinIOClient_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_TEST_ENDPOINT не задан")
	}

	cfg := &config.Config{Storage: config.Storage{
		Driver: config.StorageMinIO,
		MinIO: config.MinIO{
			Endpoint:   endpoint,
			AccessKey:  os.Getenv("MINIO_TEST_ACCESS_KEY"),
			SecretKey:  os.Getenv("MINIO_TEST_SECRET_KEY"),
			BucketName: "graphblog-test",
		},
	}}

	ctx := context.Background()
	client, err := NewMinIOClient(ctx, cfg)
	require.NoError(t, err)

	filePath, err := client.UploadImage(ctx, ".png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filePath, "images/"))

	srv := httptest.NewServer(http.StripPrefix("/images/", client.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/" + filePath)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "png", string(body))

	require.NoError(t, client.DeleteImage(ctx, filePath))

	resp, err = http.Get(srv.URL + "/" + filePath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMinIOClient_DeleteImageRejectsForeignPath(t *testing.T) {
	m := &MinIOClient{bucket: "unused"}
	assert.ErrorIs(t, m.DeleteImage(context.Background(), "../etc/passwd"), ErrInvalidPath)
}
