package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/core"
	"romlerk-backend-go/internal/middleware"
	"romlerk-backend-go/internal/models"
)

// PaymentHandler handles payment initiation, gateway callbacks and polls.
type PaymentHandler struct {
	paymentService  core.PaymentService
	callbackService core.CallbackService
	logger          *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps core.PaymentService, cs core.CallbackService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{paymentService: ps, callbackService: cs, logger: logger}
}

// Initiate handles POST /payment
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if err := core.EnsureSameUser(middleware.UserID(c), req.UID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.paymentService.Initiate(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, PaymentResponse{Success: true, Message: "Payment QR generated successfully", Data: result})
}

// Callback handles POST /payment/callback. The gateway posts JSON or a form
// and is answered with a redirect.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var payload models.CallbackPayload
	var err error
	if c.ContentType() == binding.MIMEJSON {
		err = c.ShouldBindJSON(&payload)
	} else {
		err = c.ShouldBind(&payload)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid callback payload", Details: err.Error()})
		return
	}
	h.logger.Info("ABA callback received",
		zap.String("tran_id", payload.TranID.String()),
		zap.String("status", payload.Status.String()),
		zap.Bool("has_uid", payload.UID != ""),
	)

	target, err := h.callbackService.HandleCallback(c.Request.Context(), payload)
	if err != nil {
		respondMessageError(c, h.logger, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// PollStatus handles GET /payment/callback/status/:tran_id?uid=
func (h *PaymentHandler) PollStatus(c *gin.Context) {
	tranID := c.Param("tran_id")
	uid := c.Query("uid")
	if err := core.EnsureSameUser(middleware.UserID(c), uid); err != nil {
		respondMessageError(c, h.logger, err)
		return
	}

	data, err := h.callbackService.PollStatus(c.Request.Context(), tranID, uid)
	if err != nil {
		respondMessageError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, PaymentStatusResponse{Success: true, TranID: tranID, Data: data})
}

// After handles GET /payment/after, the redirect target for success and pending.
func (h *PaymentHandler) After(c *gin.Context) {
	h.logger.Info("Payment redirect", zap.String("state", c.Query("state")), zap.String("tran_id", c.Query("tran_id")))
	c.String(http.StatusOK, "OK")
}

// Fail handles GET /payment/fail.
func (h *PaymentHandler) Fail(c *gin.Context) {
	h.logger.Info("Payment redirect", zap.String("state", models.PaymentStateFailed), zap.String("tran_id", c.Query("tran_id")))
	c.String(http.StatusOK, "OK")
}
