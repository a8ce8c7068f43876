package core

import (
	"context"
	"io"

	"romlerk-backend-go/internal/models"
)

// UserService handles the account record of an authenticated user.
type UserService interface {
	// Login creates the user on first sight and otherwise stamps lastLoginAt.
	// The bool reports whether the user was created.
	Login(ctx context.Context, uid, phone string) (*models.User, bool, error)
	Get(ctx context.Context, uid string) (*models.User, error)
	UpdateName(ctx context.Context, uid, name string) (*models.User, error)
	UpdateSlots(ctx context.Context, uid string, req models.UpdateSlotsRequest) (*models.User, error)
}

// ProfileService manages the profiles kept under a user.
type ProfileService interface {
	List(ctx context.Context, uid string) ([]*models.Profile, error)
	Create(ctx context.Context, uid string, req models.ProfileRequest) (*models.Profile, error)
	Update(ctx context.Context, uid, profileID string, req models.ProfileRequest) (*models.Profile, error)
}

// DocumentService stores schemaless documents at user or profile level.
type DocumentService interface {
	Create(ctx context.Context, uid string, body map[string]interface{}) (*models.Document, error)
	List(ctx context.Context, uid string, loc models.DocumentLocation) ([]models.Document, error)
	// Update merges body into an existing document. A profileId key in body
	// selects the location and is not stored. Returns the applied fields.
	Update(ctx context.Context, uid, docID string, body map[string]interface{}) (map[string]interface{}, error)
}

// UploadService stores user files in the object store.
type UploadService interface {
	Upload(ctx context.Context, uid string, folder UploadFolder, file UploadedFile) (*UploadResult, error)
}

// UploadedFile is a file received from a client.
type UploadedFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult names the stored object and where it can be fetched.
type UploadResult struct {
	ObjectName string
	URL        string
}

// PaymentService initiates gateway payments.
type PaymentService interface {
	// Initiate signs and submits a QR request, records it as pending and
	// returns the gateway's raw answer.
	Initiate(ctx context.Context, req models.InitiatePaymentRequest) (map[string]interface{}, error)
}

// CallbackService reconciles gateway callbacks and answers status polls.
type CallbackService interface {
	// HandleCallback records the outcome and returns the URL the gateway is
	// redirected to.
	HandleCallback(ctx context.Context, payload models.CallbackPayload) (string, error)
	PollStatus(ctx context.Context, tranID, uid string) (map[string]interface{}, error)
}
