package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingObjectStore struct {
	name        string
	body        string
	contentType string
	err         error
}

func (r *recordingObjectStore) Upload(_ context.Context, name string, body io.Reader, _ int64, contentType string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	r.name, r.body, r.contentType = name, string(b), contentType
	return "https://files.test/" + name, nil
}

func TestObjectName(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "u1/documents/1700000000123_scan.jpg", ObjectName("u1", FolderDocuments, "scan.jpg", at))
	assert.Equal(t, "u1/test_uploads/1700000000123_evil.png", ObjectName("u1", FolderTestUploads, "../../evil.png", at))
	assert.Equal(t, "u1/documents/1700000000123_c.pdf", ObjectName("u1", FolderDocuments, `a\b\c.pdf`, at))
}

func TestUpload(t *testing.T) {
	store := &recordingObjectStore{}
	s := NewUploadService(store, zap.NewNop()).(*uploadService)
	s.now = fixedClock

	res, err := s.Upload(context.Background(), "u1", FolderDocuments, UploadedFile{
		Name: "scan.jpg", ContentType: "image/jpeg", Size: 5, Body: strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1/documents/1709287445123_scan.jpg", res.ObjectName)
	assert.Equal(t, "https://files.test/u1/documents/1709287445123_scan.jpg", res.URL)
	assert.Equal(t, "hello", store.body)
	assert.Equal(t, "image/jpeg", store.contentType)
}

func TestUpload_Errors(t *testing.T) {
	store := &recordingObjectStore{}
	s := NewUploadService(store, zap.NewNop())

	_, err := s.Upload(context.Background(), "u1", FolderDocuments, UploadedFile{})
	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "No file uploaded", ce.Message)

	store.err = errors.New("bucket gone")
	_, err = s.Upload(context.Background(), "u1", FolderTestUploads, UploadedFile{Name: "a.txt", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
