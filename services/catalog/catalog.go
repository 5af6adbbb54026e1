package catalog

import (
	"context"
	"fmt"

	"sevahub/database/docstore"
	"sevahub/models"
)

// DefaultCatalogService is the production implementation, querying the
// injected document store.
type DefaultCatalogService struct {
	Store docstore.Store
}

// NewCatalogService creates a catalog over the given document store.
func NewCatalogService(store docstore.Store) *DefaultCatalogService {
	return &DefaultCatalogService{Store: store}
}

func normalizeQuery(q Query) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

func paginate(total, page, limit int) (start, end int, p Pagination) {
	pages := (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}
	return start, end, Pagination{Total: total, Pages: pages, Page: page, Limit: limit}
}

// GetServices lists catalog services, newest first.
func (s *DefaultCatalogService) GetServices(ctx context.Context, q Query) (*ServicePage, error) {
	q = normalizeQuery(q)

	var filters []docstore.Filter
	if q.Category != "" {
		filters = append(filters, docstore.Eq("category", q.Category))
	}

	var services []models.Service
	order := &docstore.Order{Field: "createdAt", Descending: true}
	if err := s.Store.Find(ctx, docstore.CollectionServices, filters, order, &services); err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}

	// City filtering goes through the owning provider.
	if q.City != "" {
		filtered := services[:0]
		for _, svc := range services {
			var p models.Provider
			if err := s.Store.Get(ctx, docstore.CollectionProviders, svc.ProviderID, &p); err != nil {
				continue
			}
			if p.City == q.City {
				filtered = append(filtered, svc)
			}
		}
		services = filtered
	}

	start, end, pagination := paginate(len(services), q.Page, q.Limit)
	return &ServicePage{Services: services[start:end], Pagination: pagination}, nil
}

// GetService fetches a single catalog entry. An absent ID surfaces
// docstore.ErrNotFound for the handler to translate.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := s.Store.Get(ctx, docstore.CollectionServices, id, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// GetProviders lists providers enriched with computed reputation, newest
// first.
func (s *DefaultCatalogService) GetProviders(ctx context.Context, q Query) (*ProviderPage, error) {
	q = normalizeQuery(q)

	var filters []docstore.Filter
	if q.Category != "" {
		filters = append(filters, docstore.Eq("category", q.Category))
	}
	if q.City != "" {
		filters = append(filters, docstore.Eq("city", q.City))
	}
	if q.Featured {
		filters = append(filters, docstore.Eq("featured", true))
	}

	var providers []models.Provider
	order := &docstore.Order{Field: "createdAt", Descending: true}
	if err := s.Store.Find(ctx, docstore.CollectionProviders, filters, order, &providers); err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}

	start, end, pagination := paginate(len(providers), q.Page, q.Limit)
	page := providers[start:end]

	listings := make([]ProviderListing, 0, len(page))
	for _, p := range page {
		listing, err := s.enrich(ctx, p)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}

	return &ProviderPage{Providers: listings, Pagination: pagination}, nil
}

// GetProvider fetches a single provider with computed reputation.
func (s *DefaultCatalogService) GetProvider(ctx context.Context, id string) (*ProviderListing, error) {
	var p models.Provider
	if err := s.Store.Get(ctx, docstore.CollectionProviders, id, &p); err != nil {
		return nil, err
	}
	return s.enrich(ctx, p)
}

// enrich computes the average rating and counts from reviews and services.
func (s *DefaultCatalogService) enrich(ctx context.Context, p models.Provider) (*ProviderListing, error) {
	var reviews []models.Review
	if err := s.Store.Find(ctx, docstore.CollectionReviews, []docstore.Filter{docstore.Eq("providerId", p.ID)}, nil, &reviews); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for provider %s: %w", p.ID, err)
	}

	var average float64
	if len(reviews) > 0 {
		var total float64
		for _, r := range reviews {
			total += r.Rating
		}
		average = total / float64(len(reviews))
		p.ReviewCount = len(reviews)
	}

	var services []models.Service
	if err := s.Store.Find(ctx, docstore.CollectionServices, []docstore.Filter{docstore.Eq("providerId", p.ID)}, nil, &services); err != nil {
		return nil, fmt.Errorf("failed to fetch services for provider %s: %w", p.ID, err)
	}

	return &ProviderListing{Provider: p, AverageRating: average, ServiceCount: len(services)}, nil
}

// GetUserBookings lists a user's bookings from the document store, newest
// first.
func (s *DefaultCatalogService) GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	order := &docstore.Order{Field: "createdAt", Descending: true}
	if err := s.Store.Find(ctx, docstore.CollectionBookings, []docstore.Filter{docstore.Eq("userId", userID)}, order, &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}
