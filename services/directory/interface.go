package directory

import (
	"context"

	"sevahub/models"
)

// CategoryAll is the sentinel category matching every provider.
const CategoryAll = "all"

// DirectoryService maintains the list of providers available for discovery
// and filtering.
type DirectoryService interface {
	// AddProvider assigns a generated ID, applies listing defaults, appends
	// the provider, persists the collection, and returns the generated ID.
	AddProvider(ctx context.Context, p models.Provider) string
	// Providers returns a snapshot of the full collection.
	Providers() []models.Provider
	// GetProvidersByCategory returns the full collection for an empty or
	// "all" category, otherwise the subset with an exact category match.
	GetProvidersByCategory(category string) []models.Provider
}
