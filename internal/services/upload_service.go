package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	courier_errors "courier/pkg/errors"

	"github.com/google/uuid"
)

// FileStore is the storage collaborator: it takes a payload and hands back
// the stable reference persisted as the message's file_path.
type FileStore interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UploadService struct {
	store    FileStore
	maxBytes int64
}

func NewUploadService(store FileStore, maxBytes int64) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes}
}

// Store enforces the attachment size policy and writes the payload under a
// key scoped to the sender. Size is checked again while reading because the
// declared size comes from the client.
func (s *UploadService) Store(ctx context.Context, senderID uuid.UUID, upload FileUpload) (string, error) {
	if s.store == nil {
		return "", courier_errors.ErrInvalidInput
	}
	if upload.Reader == nil || upload.Filename == "" {
		return "", courier_errors.ErrInvalidInput
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", courier_errors.ErrTooLarge
	}

	body := upload.Reader
	if s.maxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
		if err != nil {
			return "", err
		}
		if int64(len(data)) > s.maxBytes {
			return "", courier_errors.ErrTooLarge
		}
		body = bytes.NewReader(data)
	}

	key := buildObjectKey(senderID, upload.Filename)
	return s.store.PutObject(ctx, key, upload.ContentType, body)
}

func buildObjectKey(senderID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := fmt.Sprintf("messages/%s/%s", senderID.String(), uuid.New().String())
	if ext == "" {
		return base
	}
	return base + ext
}
