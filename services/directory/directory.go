package directory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"sevahub/database/sessioncache"
	"sevahub/models"
	"sevahub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDirectoryService is the production implementation. The provider
// collection lives in memory, seeded with defaults, and every mutation
// writes the full collection through to the session cache before returning.
type DefaultDirectoryService struct {
	mu        sync.Mutex
	cache     sessioncache.Cache
	providers []models.Provider
}

// NewDirectoryService creates a directory seeded with the default
// providers. If a persisted collection exists in the cache it replaces the
// seeds.
func NewDirectoryService(ctx context.Context, cache sessioncache.Cache) *DefaultDirectoryService {
	d := &DefaultDirectoryService{
		cache:     cache,
		providers: seedProviders(),
	}
	d.load(ctx)
	return d
}

func (d *DefaultDirectoryService) load(ctx context.Context) {
	raw, err := d.cache.Get(ctx, sessioncache.KeyProviders)
	if err != nil {
		if err != sessioncache.ErrNotFound {
			utils.GetLogger().Warn("directory: failed to read persisted providers", zap.Error(err))
		}
		return
	}
	var stored []models.Provider
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		utils.GetLogger().Warn("directory: failed to parse persisted providers", zap.Error(err))
		return
	}
	d.mu.Lock()
	d.providers = stored
	d.mu.Unlock()
}

// persistLocked writes the full collection through to the cache.
// Callers must hold d.mu.
func (d *DefaultDirectoryService) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(d.providers)
	if err != nil {
		utils.GetLogger().Error("directory: failed to serialize providers", zap.Error(err))
		return
	}
	if err := d.cache.Set(ctx, sessioncache.KeyProviders, string(raw)); err != nil {
		utils.GetLogger().Warn("directory: failed to persist providers", zap.Error(err))
	}
}

// AddProvider assigns a generated ID, applies listing defaults, appends the
// provider, and persists the collection before returning the ID.
func (d *DefaultDirectoryService) AddProvider(ctx context.Context, p models.Provider) string {
	if p.ID == "" {
		p.ID = "provider-" + uuid.New().String()
	}
	p.Verified = false
	p.Rating = 0
	p.ReviewCount = 0
	if p.Image == "" {
		p.Image = models.PlaceholderProviderImage
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.providers = append(d.providers, p)
	d.persistLocked(ctx)
	return p.ID
}

// Providers returns a snapshot of the full collection.
func (d *DefaultDirectoryService) Providers() []models.Provider {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Provider, len(d.providers))
	copy(out, d.providers)
	return out
}

// GetProvidersByCategory returns the full collection when category is empty
// or "all", otherwise the subset with an exact category match. Pure read.
func (d *DefaultDirectoryService) GetProvidersByCategory(category string) []models.Provider {
	if category == "" || category == CategoryAll {
		return d.Providers()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.Provider
	for _, p := range d.providers {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// seedProviders returns the default directory entries shown before any
// provider signs up.
func seedProviders() []models.Provider {
	return []models.Provider{
		{
			ID:           "provider1",
			UserID:       "user2",
			BusinessName: "Sharma Plumbing Solutions",
			Description:  "Professional plumbing services with over 15 years of experience.",
			Category:     "plumbing",
			Address:      "123 Service Street",
			City:         "Pune",
			Verified:     true,
			Rating:       4.8,
			ReviewCount:  127,
			Image:        models.PlaceholderProviderImage,
			User:         models.ContactInfo{Name: "Rahul Sharma", Email: "rahul@example.com", Phone: "+91 98765 43210"},
			CreatedAt:    time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "provider2",
			UserID:       "user3",
			BusinessName: "Patel Electrical Services",
			Description:  "Licensed electricians providing high-quality electrical services.",
			Category:     "electrical",
			Address:      "456 Service Avenue",
			City:         "Pune",
			Verified:     true,
			Rating:       4.7,
			ReviewCount:  94,
			Image:        models.PlaceholderProviderImage,
			User:         models.ContactInfo{Name: "Amit Patel", Email: "amit@example.com", Phone: "+91 98765 43211"},
			CreatedAt:    time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "provider3",
			UserID:       "user4",
			BusinessName: "Swachh Home Cleaners",
			Description:  "Professional cleaning services for homes and apartments.",
			Category:     "cleaning",
			Address:      "789 Clean Street",
			City:         "Pune",
			Verified:     true,
			Rating:       4.9,
			ReviewCount:  156,
			Image:        models.PlaceholderProviderImage,
			User:         models.ContactInfo{Name: "Priya Singh", Email: "priya@example.com", Phone: "+91 98765 43212"},
			CreatedAt:    time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "provider4",
			UserID:       "user5",
			BusinessName: "Singh Furniture Works",
			Description:  "Custom carpentry and woodworking services.",
			Category:     "carpentry",
			Address:      "321 Wood Lane",
			City:         "Pune",
			Verified:     true,
			Rating:       4.8,
			ReviewCount:  83,
			Image:        models.PlaceholderProviderImage,
			User:         models.ContactInfo{Name: "Gurpreet Singh", Email: "gurpreet@example.com", Phone: "+91 98765 43213"},
			CreatedAt:    time.Date(2023, 4, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}
