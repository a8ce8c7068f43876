package core

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"romlerk-backend-go/internal/storage"
)

// UploadFolder selects the object name prefix under the user.
type UploadFolder string

const (
	FolderDocuments   UploadFolder = "documents"
	FolderTestUploads UploadFolder = "test_uploads"
)

type uploadService struct {
	store  storage.ObjectStore
	logger *zap.Logger
	now    func() time.Time
}

// NewUploadService creates a new UploadService instance.
func NewUploadService(store storage.ObjectStore, logger *zap.Logger) UploadService {
	return &uploadService{store: store, logger: logger, now: time.Now}
}

// ObjectName builds {uid}/{folder}/{unixMillis}_{base name}.
func ObjectName(uid string, folder UploadFolder, fileName string, at time.Time) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	return fmt.Sprintf("%s/%s/%d_%s", uid, folder, at.UnixMilli(), base)
}

func (s *uploadService) Upload(ctx context.Context, uid string, folder UploadFolder, file UploadedFile) (*UploadResult, error) {
	if file.Body == nil || file.Name == "" {
		return nil, invalid("No file uploaded")
	}
	name := ObjectName(uid, folder, file.Name, s.now())
	url, err := s.store.Upload(ctx, name, file.Body, file.Size, file.ContentType)
	if err != nil {
		return nil, storeFailure("Upload failed", err)
	}
	s.logger.Info("File uploaded", zap.String("uid", uid), zap.String("object", name))
	return &UploadResult{ObjectName: name, URL: url}, nil
}
