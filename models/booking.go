package models

import "time"

// Booking status values.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// Booking represents an appointment for a service with a provider.
// Price is a display snapshot taken at booking time, not structured currency.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	ServiceID  string    `bson:"serviceId" json:"serviceId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time       string    `bson:"time" json:"time"` // e.g. "10:00 AM"
	Status     string    `bson:"status" json:"status"`
	Address    string    `bson:"address" json:"address"`
	City       string    `bson:"city" json:"city"`
	ZipCode    string    `bson:"zipCode" json:"zipCode"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Price      string    `bson:"price,omitempty" json:"price,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
