package models

// Default slot allowance for new users.
const (
	DefaultUsedSlots = 0
	DefaultMaxSlots  = 3
)

// Slots tracks how many document slots a user consumed out of their allowance.
type Slots struct {
	UsedSlots int `json:"usedSlots" firestore:"usedSlots"`
	MaxSlots  int `json:"maxSlots" firestore:"maxSlots"`
}

// DefaultSlots returns the allowance given at account creation.
func DefaultSlots() Slots {
	return Slots{UsedSlots: DefaultUsedSlots, MaxSlots: DefaultMaxSlots}
}

// User is stored at users/{uid}. Phone and Name stay null until known.
type User struct {
	UID         string  `json:"uid" firestore:"uid"`
	Phone       *string `json:"phone" firestore:"phone"`
	Name        *string `json:"name" firestore:"name"`
	CreatedAt   string  `json:"createdAt" firestore:"createdAt"`
	LastLoginAt string  `json:"lastLoginAt,omitempty" firestore:"lastLoginAt"`
	UpdatedAt   string  `json:"updatedAt,omitempty" firestore:"updatedAt"`
	Slots       Slots   `json:"slots" firestore:"slots"`
}

// ToMap renders the user for a full document write.
func (u *User) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"uid":       u.UID,
		"phone":     stringOrNil(u.Phone),
		"name":      stringOrNil(u.Name),
		"createdAt": u.CreatedAt,
		"slots":     u.Slots.ToMap(),
	}
	if u.LastLoginAt != "" {
		m["lastLoginAt"] = u.LastLoginAt
	}
	if u.UpdatedAt != "" {
		m["updatedAt"] = u.UpdatedAt
	}
	return m
}

// ToMap renders the slots record.
func (s Slots) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"usedSlots": s.UsedSlots,
		"maxSlots":  s.MaxSlots,
	}
}

func stringOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
