package models

import "time"

// User roles.
const (
	RoleUser     = "USER"
	RoleProvider = "PROVIDER"
)

// Account types as submitted by signup/login forms.
const (
	AccountTypeUser     = "user"
	AccountTypeProvider = "provider"
)

// User represents a platform user together with their booking history.
// Bookings are denormalized onto the user record so the full snapshot can be
// persisted to the session cache in one write.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	Role        string    `bson:"role" json:"role"` // "USER" or "PROVIDER"
	AccountType string    `bson:"accountType" json:"accountType,omitempty"`
	Image       string    `bson:"image" json:"image,omitempty"`
	Bookings    []Booking `bson:"bookings" json:"bookings"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`

	// Provider-only profile fields, present when AccountType == "provider".
	BusinessName string `bson:"businessName,omitempty" json:"businessName,omitempty"`
	Category     string `bson:"category,omitempty" json:"category,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	City         string `bson:"city,omitempty" json:"city,omitempty"`
	Description  string `bson:"description,omitempty" json:"description,omitempty"`
}

// RoleForAccountType maps a submitted account type to the stored role.
func RoleForAccountType(accountType string) string {
	if accountType == AccountTypeProvider {
		return RoleProvider
	}
	return RoleUser
}

// PlaceholderAvatar is the default profile image reference.
const PlaceholderAvatar = "/placeholder.svg?height=100&width=100"
