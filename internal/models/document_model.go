package models

// MainProfileID is the client-side id of the account holder's own profile.
// Documents addressed to it live directly under the user.
const MainProfileID = "main"

// Document fields the server owns.
const (
	FieldDocumentType = "type"
	FieldProfileID    = "profileId"
	FieldCreatedAt    = "createdAt"
	FieldUpdatedAt    = "updatedAt"
)

// DocumentLocation says where a document lives: directly under the user or
// under one of the user's profiles. The zero value is the user level.
type DocumentLocation struct {
	profileID string
}

// UserLevel addresses users/{uid}/documents.
func UserLevel() DocumentLocation {
	return DocumentLocation{}
}

// ProfileLevel addresses users/{uid}/profiles/{profileID}/documents.
func ProfileLevel(profileID string) DocumentLocation {
	return DocumentLocation{profileID: profileID}
}

// LocationForProfileID converts the profileId sent by clients. An empty id and
// MainProfileID both mean the user level.
func LocationForProfileID(profileID string) DocumentLocation {
	if profileID == "" || profileID == MainProfileID {
		return UserLevel()
	}
	return ProfileLevel(profileID)
}

// ProfileID returns the profile id and whether the location is profile level.
func (l DocumentLocation) ProfileID() (string, bool) {
	return l.profileID, l.profileID != ""
}

func (l DocumentLocation) String() string {
	if l.profileID == "" {
		return "user"
	}
	return "profile:" + l.profileID
}

// Document is a schemaless record owned by a user, optionally scoped to a profile.
type Document struct {
	ID   string                 `json:"id"`
	Data map[string]interface{} `json:"data"`
}

// CreatedAt returns the stored creation timestamp, or "" when missing.
func (d Document) CreatedAt() string {
	s, _ := d.Data[FieldCreatedAt].(string)
	return s
}

// Flatten merges the id into the fields, the shape clients list documents in.
func (d Document) Flatten() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Data)+1)
	out["id"] = d.ID
	for k, v := range d.Data {
		out[k] = v
	}
	return out
}
