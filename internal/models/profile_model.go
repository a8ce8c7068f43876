package models

// DefaultProfileType is used when a profile is saved without a type.
const DefaultProfileType = "Other"

// MinNameLength is the minimum trimmed length of user and profile names.
const MinNameLength = 2

// Profile is a person managed under a user account (users/{uid}/profiles/{id}).
type Profile struct {
	ID        string `json:"id" firestore:"-"`
	Name      string `json:"name" firestore:"name"`
	Type      string `json:"type" firestore:"type"`
	CreatedAt string `json:"createdAt,omitempty" firestore:"createdAt"`
}

// ToMap renders the stored fields.
func (p *Profile) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"name":      p.Name,
		"type":      p.Type,
		"createdAt": p.CreatedAt,
	}
}
