package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// downloadTokenKey is the object metadata key Firebase Storage reads
// download tokens from.
const downloadTokenKey = "firebaseStorageDownloadTokens"

// FirebaseStore writes objects to a Firebase Storage bucket.
type FirebaseStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
	newToken   func() string
}

// NewFirebaseStore wraps a bucket handle obtained from the Firebase storage client.
func NewFirebaseStore(bucket *gcs.BucketHandle, bucketName string) (*FirebaseStore, error) {
	if bucket == nil || bucketName == "" {
		return nil, errors.New("firebase storage bucket is not configured")
	}
	return &FirebaseStore{bucket: bucket, bucketName: bucketName, newToken: uuid.NewString}, nil
}

func (s *FirebaseStore) Upload(ctx context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	token := s.newToken()
	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentTypeOrDefault(contentType)
	w.Metadata = map[string]string{downloadTokenKey: token}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %q: %w", name, err)
	}
	return FirebaseDownloadURL(s.bucketName, name, token), nil
}

// FirebaseDownloadURL builds the token-authorised download URL for an object.
func FirebaseDownloadURL(bucket, name, token string) string {
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		url.PathEscape(bucket), url.PathEscape(name))
	if token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}
