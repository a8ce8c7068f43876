package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/core"
	"romlerk-backend-go/internal/middleware"
)

// UploadLimit caps multipart upload bodies.
const UploadLimit int64 = 10 << 20

// Services bundles what the route table needs.
type Services struct {
	Users     core.UserService
	Profiles  core.ProfileService
	Documents core.DocumentService
	Uploads   core.UploadService
	Payments  core.PaymentService
	Callbacks core.CallbackService
}

// RouterOptions carries the transport settings of the route table.
type RouterOptions struct {
	MaxBodyBytes   int64
	MetricsHandler http.Handler
}

// SetupRoutes registers every endpoint on router.
func SetupRoutes(router *gin.Engine, svc Services, auth *middleware.AuthMiddleware, opts RouterOptions, logger *zap.Logger) {
	userHandler := NewUserHandler(svc.Users, logger)
	profileHandler := NewProfileHandler(svc.Profiles, logger)
	documentHandler := NewDocumentHandler(svc.Documents, svc.Uploads, logger)
	paymentHandler := NewPaymentHandler(svc.Payments, svc.Callbacks, logger)

	jsonLimit := middleware.BodyLimit(opts.MaxBodyBytes)
	uploadLimit := middleware.BodyLimit(UploadLimit)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Romlerk backend running")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	if opts.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	router.GET("/secure", auth.VerifyToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "You are authenticated!",
			"uid":     middleware.UserID(c),
			"phone":   middleware.UserPhone(c),
		})
	})

	users := router.Group("/users", auth.VerifyToken(), jsonLimit)
	{
		users.POST("/login", userHandler.Login)
		users.GET("/me", userHandler.GetMe)
		users.PATCH("/profile", userHandler.UpdateName)
		users.PATCH("/slots", userHandler.UpdateSlots)
	}

	profiles := router.Group("/profiles", auth.VerifyToken(), jsonLimit)
	{
		profiles.GET("", profileHandler.List)
		profiles.POST("", profileHandler.Create)
		profiles.PATCH("/:id", profileHandler.Update)
	}

	documents := router.Group("/documents", auth.VerifyToken())
	{
		documents.GET("", documentHandler.List)
		documents.POST("", jsonLimit, documentHandler.Create)
		documents.PATCH("/:id", jsonLimit, documentHandler.Update)
		documents.POST("/upload", uploadLimit, documentHandler.Upload)
		documents.POST("/test-upload", uploadLimit, documentHandler.TestUpload)
	}

	payment := router.Group("/payment")
	{
		payment.POST("", auth.VerifyToken(), jsonLimit, paymentHandler.Initiate)
		payment.POST("/callback", jsonLimit, paymentHandler.Callback)
		payment.GET("/callback/status/:tran_id", auth.VerifyToken(), paymentHandler.PollStatus)
		payment.GET("/after", paymentHandler.After)
		payment.GET("/fail", paymentHandler.Fail)
	}
}
