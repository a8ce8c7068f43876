package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/core"
	"romlerk-backend-go/internal/middleware"
	"romlerk-backend-go/internal/models"
)

// ProfileHandler handles the /profiles endpoints.
type ProfileHandler struct {
	profileService core.ProfileService
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps core.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: ps, logger: logger}
}

// List handles GET /profiles
func (h *ProfileHandler) List(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	profiles, err := h.profileService.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Create handles POST /profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	profile, err := h.profileService.Create(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Profile created successfully", ID: profile.ID, Data: profile})
}

// Update handles PATCH /profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), uid, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated successfully", Data: profile})
}
