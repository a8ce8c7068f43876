// Package firebase builds the Firebase Admin clients the server depends on.
package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"romlerk-backend-go/internal/config"
)

// Clients owns the Firebase clients for the lifetime of the process.
type Clients struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
	// Bucket is nil unless Firebase Storage is the configured object store.
	Bucket *gcs.BucketHandle
}

// credentialOptions picks the credential source: a key file, a base64 key,
// or Application Default Credentials when explicitly allowed.
func credentialOptions(cfg *config.Config, logger *zap.Logger) ([]option.ClientOption, error) {
	switch {
	case cfg.GoogleApplicationCredentials != "":
		if _, err := os.Stat(cfg.GoogleApplicationCredentials); err != nil {
			return nil, fmt.Errorf("credentials file %q: %w", cfg.GoogleApplicationCredentials, err)
		}
		logger.Info("Using Firebase credentials file", zap.String("path", cfg.GoogleApplicationCredentials))
		return []option.ClientOption{option.WithCredentialsFile(cfg.GoogleApplicationCredentials)}, nil
	case cfg.FirebaseServiceAccountJSONBase64 != "":
		jsonKey, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, errors.New("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not a valid base64 string")
		}
		logger.Info("Using base64 encoded Firebase service account")
		return []option.ClientOption{option.WithCredentialsJSON(jsonKey)}, nil
	case cfg.FirebaseUseADC:
		logger.Info("Using Application Default Credentials")
		return nil, nil
	default:
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 must be set")
	}
}

// NewClients initializes the app, Auth, Firestore on the configured named
// database and, for the firebase object store, the storage bucket.
func NewClients(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Clients, error) {
	opts, err := credentialOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	appConfig := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	if cfg.FirebaseStorageBucket != "" {
		appConfig.StorageBucket = cfg.FirebaseStorageBucket
	}
	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	fsClient, err := firestore.NewClientWithDatabase(ctx, cfg.FirebaseProjectID, cfg.FirestoreDatabaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClientWithDatabase(%s): %w", cfg.FirestoreDatabaseID, err)
	}
	logger.Info("Firestore client initialized", zap.String("database", cfg.FirestoreDatabaseID))

	clients := &Clients{App: app, Auth: authClient, Firestore: fsClient}
	if cfg.ObjectStore != config.ObjectStoreFirebase {
		return clients, nil
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, fmt.Errorf("app.Storage: %w", err)
	}
	bucket, err := storageClient.Bucket(cfg.FirebaseStorageBucket)
	if err != nil {
		_ = fsClient.Close()
		return nil, fmt.Errorf("storage bucket %q: %w", cfg.FirebaseStorageBucket, err)
	}
	clients.Bucket = bucket
	logger.Info("Firebase Storage bucket ready", zap.String("bucket", cfg.FirebaseStorageBucket))
	return clients, nil
}

// Close releases the Firestore connection. Auth and Storage hold no
// resources that need closing.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
