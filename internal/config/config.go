package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Object store backends selectable through OBJECT_STORE.
const (
	ObjectStoreFirebase = "firebase"
	ObjectStoreMinIO    = "minio"
)

// DefaultPayWayEndpoint is the PayWay sandbox QR generation endpoint.
const DefaultPayWayEndpoint = "https://checkout-sandbox.payway.com.kh/api/payment-gateway/v1/payments/generate-qr"

// Config holds all configuration for the application.
type Config struct {
	Port                             string        `mapstructure:"PORT"`
	GinMode                          string        `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string        `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string        `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	FirebaseUseADC                   bool          `mapstructure:"FIREBASE_USE_ADC"`
	FirestoreDatabaseID              string        `mapstructure:"FIRESTORE_DATABASE_ID"`
	FirebaseStorageBucket            string        `mapstructure:"FIREBASE_STORAGE_BUCKET"`
	ObjectStore                      string        `mapstructure:"OBJECT_STORE"`
	MinIOEndpoint                    string        `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey                   string        `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey                   string        `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket                      string        `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL                      bool          `mapstructure:"MINIO_USE_SSL"`
	PayWayAPIKey                     string        `mapstructure:"ABA_API_KEY"`
	PayWayMerchantID                 string        `mapstructure:"ABA_MERCHANT_ID"`
	PayWayCallbackURL                string        `mapstructure:"ABA_CALLBACK_URL"`
	PayWayEndpoint                   string        `mapstructure:"ABA_API_URL"`
	BaseURL                          string        `mapstructure:"BASE_URL"`
	ClientURL                        string        `mapstructure:"CLIENT_URL"`
	MaxBodyBytes                     int64         `mapstructure:"MAX_BODY_BYTES"`
	ShutdownTimeout                  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"FIREBASE_USE_ADC",
	"FIRESTORE_DATABASE_ID",
	"FIREBASE_STORAGE_BUCKET",
	"OBJECT_STORE",
	"MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY",
	"MINIO_SECRET_KEY",
	"MINIO_BUCKET",
	"MINIO_USE_SSL",
	"ABA_API_KEY",
	"ABA_MERCHANT_ID",
	"ABA_CALLBACK_URL",
	"ABA_API_URL",
	"BASE_URL",
	"CLIENT_URL",
	"MAX_BODY_BYTES",
	"SHUTDOWN_TIMEOUT",
}

// LoadConfig loads configuration from environment variables using Viper.
// Missing required values are reported as an error; callers treat that as fatal.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("FIRESTORE_DATABASE_ID", "romlerk-db")
	v.SetDefault("OBJECT_STORE", ObjectStoreFirebase)
	v.SetDefault("MINIO_BUCKET", "romlerk")
	v.SetDefault("ABA_API_URL", DefaultPayWayEndpoint)
	v.SetDefault("CLIENT_URL", "*")
	v.SetDefault("MAX_BODY_BYTES", 256*1024)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.New("failed to bind env " + key + ": " + err.Error())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	cfg.FirebaseStorageBucket = strings.TrimPrefix(cfg.FirebaseStorageBucket, "gs://")
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.ObjectStore = strings.ToLower(strings.TrimSpace(cfg.ObjectStore))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if !c.FirebaseUseADC && c.GoogleApplicationCredentials == "" && c.FirebaseServiceAccountJSONBase64 == "" {
		return errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}

	switch c.ObjectStore {
	case ObjectStoreFirebase:
		if c.FirebaseStorageBucket == "" {
			return errors.New("FIREBASE_STORAGE_BUCKET is required")
		}
	case ObjectStoreMinIO:
		if c.MinIOEndpoint == "" || c.MinIOAccessKey == "" || c.MinIOSecretKey == "" {
			return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when OBJECT_STORE=minio")
		}
	default:
		return errors.New("OBJECT_STORE must be one of: firebase, minio")
	}

	if c.PayWayAPIKey == "" {
		return errors.New("ABA_API_KEY is required")
	}
	if c.PayWayMerchantID == "" {
		return errors.New("ABA_MERCHANT_ID is required")
	}
	if c.PayWayCallbackURL == "" {
		return errors.New("ABA_CALLBACK_URL is required")
	}
	if c.BaseURL == "" {
		return errors.New("BASE_URL is required")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	return nil
}

// IsRelease reports whether gin should run in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
