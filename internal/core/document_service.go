package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"romlerk-backend-go/internal/db"
	"romlerk-backend-go/internal/models"
)

type documentService struct {
	documentRepo db.DocumentRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewDocumentService creates a new DocumentService instance.
func NewDocumentService(documentRepo db.DocumentRepository, logger *zap.Logger) DocumentService {
	return &documentService{documentRepo: documentRepo, logger: logger, now: time.Now}
}

// locationOf reads the optional profileId field. Non-string values are rejected.
func locationOf(body map[string]interface{}) (models.DocumentLocation, error) {
	raw, ok := body[models.FieldProfileID]
	if !ok || raw == nil {
		return models.UserLevel(), nil
	}
	profileID, ok := raw.(string)
	if !ok {
		return models.DocumentLocation{}, invalid("profileId must be a string")
	}
	return models.LocationForProfileID(profileID), nil
}

func (s *documentService) Create(ctx context.Context, uid string, body map[string]interface{}) (*models.Document, error) {
	if t, ok := body[models.FieldDocumentType]; !ok || t == nil || t == "" {
		return nil, invalid("Missing document type")
	}
	loc, err := locationOf(body)
	if err != nil {
		return nil, err
	}

	now := models.Timestamp(s.now())
	data := make(map[string]interface{}, len(body)+2)
	for k, v := range body {
		data[k] = v
	}
	data[models.FieldCreatedAt] = now
	data[models.FieldUpdatedAt] = now

	id, err := s.documentRepo.Create(ctx, uid, loc, data)
	if err != nil {
		return nil, storeFailure("Failed to save document", err)
	}
	s.logger.Info("Document saved", zap.String("uid", uid), zap.Stringer("location", loc), zap.String("documentId", id))
	return &models.Document{ID: id, Data: data}, nil
}

func (s *documentService) List(ctx context.Context, uid string, loc models.DocumentLocation) ([]models.Document, error) {
	docs, err := s.documentRepo.List(ctx, uid, loc)
	if err != nil {
		return nil, storeFailure("Failed to fetch documents", err)
	}
	return docs, nil
}

func (s *documentService) Update(ctx context.Context, uid, docID string, body map[string]interface{}) (map[string]interface{}, error) {
	if docID == "" {
		return nil, invalid("Missing document ID")
	}
	loc, err := locationOf(body)
	if err != nil {
		return nil, err
	}
	updates := make(map[string]interface{}, len(body))
	for k, v := range body {
		if k == models.FieldProfileID {
			continue
		}
		updates[k] = v
	}
	if len(updates) == 0 {
		return nil, invalid("No update fields provided")
	}
	updates[models.FieldUpdatedAt] = models.Timestamp(s.now())

	if err := s.documentRepo.Merge(ctx, uid, loc, docID, updates); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, notFound("Document not found", err)
		}
		return nil, storeFailure("Failed to update document", err)
	}
	return updates, nil
}
