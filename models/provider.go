package models

import "time"

// ContactInfo is the denormalized owner contact snapshot carried on a
// provider record.
type ContactInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Provider represents a service-provider business listed in the directory.
type Provider struct {
	ID           string      `bson:"id" json:"id"`
	UserID       string      `bson:"userId" json:"userId"`
	BusinessName string      `bson:"businessName" json:"businessName"`
	Description  string      `bson:"description" json:"description"`
	Category     string      `bson:"category" json:"category"`
	Address      string      `bson:"address" json:"address"`
	City         string      `bson:"city" json:"city"`
	State        string      `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode      string      `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Verified     bool        `bson:"verified" json:"verified"`
	Featured     bool        `bson:"featured" json:"featured"`
	Rating       float64     `bson:"rating" json:"rating"`
	ReviewCount  int         `bson:"reviewCount" json:"reviewCount"`
	Image        string      `bson:"image" json:"image"`
	User         ContactInfo `bson:"user" json:"user"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
}

// PlaceholderProviderImage is the default listing image reference.
const PlaceholderProviderImage = "/placeholder.svg?height=150&width=150"
