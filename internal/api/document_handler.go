package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/core"
	"romlerk-backend-go/internal/middleware"
	"romlerk-backend-go/internal/models"
)

// DocumentHandler handles the /documents endpoints.
type DocumentHandler struct {
	documentService core.DocumentService
	uploadService   core.UploadService
	logger          *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(ds core.DocumentService, us core.UploadService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documentService: ds, uploadService: us, logger: logger}
}

// Create handles POST /documents
func (h *DocumentHandler) Create(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		badPayload(c, err)
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), uid, body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Document saved successfully", ID: doc.ID, Data: doc.Data})
}

// List handles GET /documents?profileId=
func (h *DocumentHandler) List(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	loc := models.LocationForProfileID(c.Query("profileId"))

	docs, err := h.documentService.List(c.Request.Context(), uid, loc)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	out := make([]map[string]interface{}, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Flatten())
	}
	c.JSON(http.StatusOK, out)
}

// Update handles PATCH /documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		badPayload(c, err)
		return
	}

	id := c.Param("id")
	updates, err := h.documentService.Update(c.Request.Context(), uid, id, body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document updated successfully", "id": id, "updates": updates})
}

// Upload handles POST /documents/upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	res, ok := h.receiveFile(c, core.FolderDocuments)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload successful", "imageUrl": res.URL})
}

// TestUpload handles POST /documents/test-upload
func (h *DocumentHandler) TestUpload(c *gin.Context) {
	res, ok := h.receiveFile(c, core.FolderTestUploads)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test upload successful!", "fileName": res.ObjectName, "publicUrl": res.URL})
}

func (h *DocumentHandler) receiveFile(c *gin.Context, folder core.UploadFolder) (*core.UploadResult, bool) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return nil, false
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "File too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file uploaded"})
		return nil, false
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file uploaded", Details: err.Error()})
		return nil, false
	}
	defer file.Close()

	res, err := h.uploadService.Upload(c.Request.Context(), uid, folder, core.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	return res, true
}
