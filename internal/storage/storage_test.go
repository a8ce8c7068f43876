package storage

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirebaseDownloadURL(t *testing.T) {
	got := FirebaseDownloadURL("romlerk.appspot.com", "u1/documents/1700000000000_my scan.jpg", "tok-1")
	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/romlerk.appspot.com/o/u1%2Fdocuments%2F1700000000000_my%20scan.jpg?alt=media&token=tok-1",
		got)

	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/b/o/a.txt?alt=media",
		FirebaseDownloadURL("b", "a.txt", ""))
}

func TestMinIOObjectURL(t *testing.T) {
	endpoint, err := url.Parse("http://localhost:9000")
	require.NoError(t, err)
	assert.Equal(t,
		"http://localhost:9000/romlerk/u1/test_uploads/1_a%20b.png",
		MinIOObjectURL(endpoint, "romlerk", "u1/test_uploads/1_a b.png"))
}

func TestNewFirebaseStore_RequiresBucket(t *testing.T) {
	_, err := NewFirebaseStore(nil, "")
	assert.Error(t, err)
}

func TestNewMinIOStore_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStore(context.Background(), MinIOConfig{Bucket: "b"})
	assert.Error(t, err)
}

func TestContentTypeOrDefault(t *testing.T) {
	assert.Equal(t, "application/octet-stream", contentTypeOrDefault(""))
	assert.Equal(t, "image/png", contentTypeOrDefault("image/png"))
}
