package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	key, contentType string
	body             []byte
	err              error
}

func (u *recordingUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.key, u.contentType, u.body = key, contentType, body
	return &UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *recordingUploader) GetPublicURL(key string) string {
	return "https://files.example.org/" + key
}

func TestReportArchive_Store(t *testing.T) {
	uploader := &recordingUploader{}
	archive := NewReportArchive(uploader)

	result, err := archive.Store(context.Background(), 42, ".txt", "text/plain", []byte("012 Club"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^reports/42/[0-9a-f-]{36}\.txt$`), uploader.key)
	assert.Equal(t, "text/plain", uploader.contentType)
	assert.Equal(t, []byte("012 Club"), uploader.body)
	assert.Equal(t, "https://files.example.org/"+uploader.key, result.Location)
}

func TestReportArchive_UniqueKeys(t *testing.T) {
	uploader := &recordingUploader{}
	archive := NewReportArchive(uploader)

	_, err := archive.Store(context.Background(), 1, "xlsx", "application/octet-stream", nil)
	require.NoError(t, err)
	first := uploader.key
	_, err = archive.Store(context.Background(), 1, "xlsx", "application/octet-stream", nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, uploader.key)
}

func TestReportArchive_UploadError(t *testing.T) {
	boom := errors.New("bucket unavailable")
	archive := NewReportArchive(&recordingUploader{err: boom})

	_, err := archive.Store(context.Background(), 1, "txt", "text/plain", []byte("x"))
	require.ErrorIs(t, err, boom)
}

func TestCloudflareR2Uploader(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	require.Error(t, err)

	u, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "reports",
		PublicBaseURL:   "https://files.example.org/league/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.org/league/reports/1/a.txt", u.GetPublicURL("reports/1/a.txt"))
	assert.Equal(t, "https://files.example.org/league/reports/1/a.txt", u.GetPublicURL("/reports/1/a.txt"))
	assert.Empty(t, u.GetPublicURL(""))
}
