package docstore

import (
	"time"

	"sevahub/models"
)

// NewSeededMemoryStore returns a MemoryStore preloaded with the demo
// catalog: the fixtures served when no database is reachable.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	now := time.Now()

	_ = s.Seed(CollectionUsers, []models.User{
		{
			ID:        "user1",
			Name:      "Rahul Sharma",
			Email:     "rahul@example.com",
			Phone:     "+91 98765 43210",
			Role:      models.RoleUser,
			Image:     models.PlaceholderAvatar,
			Bookings:  []models.Booking{},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "user2",
			Name:      "Priya Patel",
			Email:     "priya@example.com",
			Phone:     "+91 98765 43211",
			Role:      models.RoleProvider,
			Image:     models.PlaceholderAvatar,
			Bookings:  []models.Booking{},
			CreatedAt: now,
			UpdatedAt: now,
		},
	})

	_ = s.Seed(CollectionProviders, []models.Provider{
		{
			ID:           "provider1",
			UserID:       "user2",
			BusinessName: "Sharma Plumbing Solutions",
			Description:  "Professional plumbing services with over 15 years of experience.",
			Category:     "plumbing",
			Address:      "123 Service Street",
			City:         "Delhi NCR",
			State:        "Delhi",
			ZipCode:      "110001",
			Verified:     true,
			Featured:     true,
			Rating:       4.8,
			ReviewCount:  127,
			Image:        models.PlaceholderProviderImage,
			User:         models.ContactInfo{Name: "Rahul Sharma", Email: "rahul@example.com", Phone: "+91 98765 43210"},
			CreatedAt:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "provider2",
			UserID:       "user3",
			BusinessName: "Patel Electrical Services",
			Description:  "Licensed electricians providing high-quality electrical services.",
			Category:     "electrical",
			Address:      "456 Service Avenue",
			City:         "Mumbai",
			State:        "Maharashtra",
			ZipCode:      "400001",
			Verified:     true,
			Featured:     true,
			Rating:       4.7,
			ReviewCount:  94,
			Image:        models.PlaceholderProviderImage,
			User:         models.ContactInfo{Name: "Amit Patel", Email: "amit@example.com", Phone: "+91 98765 43211"},
			CreatedAt:    time.Date(2019, 5, 15, 0, 0, 0, 0, time.UTC),
		},
	})

	_ = s.Seed(CollectionServices, []models.Service{
		{
			ID:          "service1",
			ProviderID:  "provider1",
			Title:       "Professional Plumbing Services",
			Description: "Expert plumbing services for residential and commercial properties.",
			Price:       "₹300-500/hr",
			Duration:    "1-3 hours",
			Category:    "plumbing",
			Image:       "/placeholder.svg?height=300&width=400",
			CreatedAt:   now,
		},
		{
			ID:          "service2",
			ProviderID:  "provider2",
			Title:       "Expert Electrical Repairs & Installation",
			Description: "Licensed electricians providing high-quality electrical services.",
			Price:       "₹350-600/hr",
			Duration:    "1-4 hours",
			Category:    "electrical",
			Image:       "/placeholder.svg?height=300&width=400",
			CreatedAt:   now,
		},
		{
			ID:          "service3",
			ProviderID:  "provider1",
			Title:       "Premium House Cleaning Services",
			Description: "Professional cleaning services for homes and apartments.",
			Price:       "₹250-400/hr",
			Duration:    "2-4 hours",
			Category:    "cleaning",
			Image:       "/placeholder.svg?height=300&width=400",
			CreatedAt:   now,
		},
	})

	_ = s.Seed(CollectionBookings, []models.Booking{
		{
			ID:         "booking1",
			UserID:     "user1",
			ServiceID:  "service1",
			ProviderID: "provider1",
			Date:       now.AddDate(0, 0, 3).Format("2006-01-02"),
			Time:       "10:00 AM",
			Status:     models.BookingConfirmed,
			Address:    "789 Customer Lane",
			City:       "Delhi",
			ZipCode:    "110001",
			Notes:      "Please bring all necessary tools.",
			Price:      "₹300-500/hr",
			CreatedAt:  now,
		},
	})

	_ = s.Seed(CollectionReviews, []models.Review{
		{
			ID:         "review1",
			UserID:     "user1",
			ProviderID: "provider1",
			Rating:     5,
			Comment:    "Excellent service! The plumber arrived on time and fixed the issue quickly.",
			Helpful:    12,
			CreatedAt:  now.AddDate(0, 0, -14),
		},
		{
			ID:         "review2",
			UserID:     "user1",
			ProviderID: "provider2",
			Rating:     4,
			Comment:    "Good work on the wiring, slightly late to arrive.",
			Helpful:    5,
			CreatedAt:  now.AddDate(0, 0, -7),
		},
	})

	return s
}
