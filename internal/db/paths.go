package db

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"romlerk-backend-go/internal/models"
	"romlerk-backend-go/pkg/database"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = database.ErrNotFound

const (
	usersCollection     = "users"
	profilesCollection  = "profiles"
	documentsCollection = "documents"
	paymentsCollection  = "payments"
)

func userPath(uid string) database.Path {
	return database.Collection(usersCollection).Doc(uid)
}

func profilesPath(uid string) database.Path {
	return userPath(uid).Collection(profilesCollection)
}

func documentsPath(uid string, loc models.DocumentLocation) database.Path {
	if profileID, ok := loc.ProfileID(); ok {
		return profilesPath(uid).Doc(profileID).Collection(documentsCollection)
	}
	return userPath(uid).Collection(documentsCollection)
}

func paymentPath(uid, tranID string) database.Path {
	if uid == "" {
		return database.Collection(paymentsCollection).Doc(tranID)
	}
	return userPath(uid).Collection(paymentsCollection).Doc(tranID)
}

// decode fills out from a stored map using the firestore field tags.
func decode(data map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "firestore",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	return dec.Decode(data)
}
