package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"romlerk-backend-go/internal/models"
)

// Context keys set by VerifyToken.
const (
	ContextUserID    = "userID"
	ContextUserPhone = "userPhone"
)

// Identity is what a verified ID token says about the caller.
type Identity struct {
	UID   string
	Phone string
}

// TokenVerifier checks an ID token and returns the caller's identity.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier wraps an Auth client.
func NewFirebaseVerifier(client *auth.Client) (*FirebaseVerifier, error) {
	if client == nil {
		return nil, errors.New("firebase auth client is not initialized")
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Identity{}, err
	}
	phone, _ := token.Claims["phone_number"].(string)
	return Identity{UID: token.UID, Phone: phone}, nil
}

// AuthMiddleware guards routes that need a signed-in user.
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// VerifyToken rejects requests without a valid ID token and stores the
// caller's uid and phone in the context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Missing or invalid Authorization header"})
			return
		}

		identity, err := m.verifier.Verify(c.Request.Context(), idToken)
		if err != nil || identity.UID == "" {
			m.logger.Warn("ID token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			return
		}

		c.Set(ContextUserID, identity.UID)
		c.Set(ContextUserPhone, identity.Phone)
		c.Next()
	}
}

// UserID returns the uid set by VerifyToken.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// UserPhone returns the phone claim set by VerifyToken, or "".
func UserPhone(c *gin.Context) string {
	return c.GetString(ContextUserPhone)
}
