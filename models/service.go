package models

import "time"

// Service is a catalog entry owned by a provider. Read-only in the session
// core; created and maintained out of band.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Price       string    `bson:"price" json:"price"`       // display range, e.g. "₹300-500/hr"
	Duration    string    `bson:"duration" json:"duration"` // e.g. "1-3 hours"
	Category    string    `bson:"category" json:"category"`
	Image       string    `bson:"image" json:"image"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Review is a customer review of a provider.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Rating     float64   `bson:"rating" json:"rating"` // 1 to 5
	Comment    string    `bson:"comment" json:"comment"`
	Helpful    int       `bson:"helpful" json:"helpful"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
