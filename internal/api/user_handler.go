package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/core"
	"romlerk-backend-go/internal/middleware"
	"romlerk-backend-go/internal/models"
)

// UserHandler handles the /users endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// Login handles POST /users/login, called by the app right after phone verification.
func (h *UserHandler) Login(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}

	user, created, err := h.userService.Login(c.Request.Context(), uid, middleware.UserPhone(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, SuccessResponse{Message: "User created successfully", ID: uid, Data: user})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "User exists and logged in", ID: uid, Data: user})
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateName handles PATCH /users/profile.
func (h *UserHandler) UpdateName(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	var req models.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	user, err := h.userService.UpdateName(c.Request.Context(), uid, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Profile updated successfully", Data: user})
}

// UpdateSlots handles PATCH /users/slots.
func (h *UserHandler) UpdateSlots(c *gin.Context) {
	uid := middleware.UserID(c)
	if !currentUser(c, uid) {
		return
	}
	var req models.UpdateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	user, err := h.userService.UpdateSlots(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Slots updated successfully", Data: user})
}
