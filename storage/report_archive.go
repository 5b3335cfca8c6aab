package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// UploadResult locates a stored object; Location is its public URL.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader puts objects into a bucket that is readable over HTTP.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	GetPublicURL(key string) string
}

// ReportArchive keeps a copy of every generated export.
type ReportArchive struct {
	uploader FileUploader
	newID    func() string
}

func NewReportArchive(uploader FileUploader) *ReportArchive {
	return &ReportArchive{uploader: uploader, newID: func() string { return uuid.NewString() }}
}

// Store uploads data under reports/<groupID>/<uuid>.<ext>.
func (a *ReportArchive) Store(ctx context.Context, groupID int, ext string, contentType string, data []byte) (*UploadResult, error) {
	key := fmt.Sprintf("reports/%d/%s.%s", groupID, a.newID(), strings.TrimPrefix(ext, "."))
	result, err := a.uploader.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to archive report for group %d: %w", groupID, err)
	}
	return result, nil
}
