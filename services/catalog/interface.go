package catalog

import (
	"context"

	"sevahub/models"
)

// Query narrows a catalog listing. Zero values mean "no filter"; Page and
// Limit default to 1 and 10.
type Query struct {
	Category string
	City     string
	Featured bool
	Page     int
	Limit    int
}

// Pagination describes a page of results.
type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ServicePage is a page of catalog services.
type ServicePage struct {
	Services   []models.Service `json:"services"`
	Pagination Pagination       `json:"pagination"`
}

// ProviderListing is a provider enriched with its computed reputation.
type ProviderListing struct {
	models.Provider
	AverageRating float64 `json:"averageRating"`
	ServiceCount  int     `json:"serviceCount"`
}

// ProviderPage is a page of provider listings.
type ProviderPage struct {
	Providers  []ProviderListing `json:"providers"`
	Pagination Pagination        `json:"pagination"`
}

// CatalogService is the read-only query surface over the document store.
type CatalogService interface {
	GetServices(ctx context.Context, q Query) (*ServicePage, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetProviders(ctx context.Context, q Query) (*ProviderPage, error)
	GetProvider(ctx context.Context, id string) (*ProviderListing, error)
	GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
