package session

import (
	"context"
	"time"

	"sevahub/database/docstore"
	"sevahub/database/sessioncache"
	"sevahub/models"
	"sevahub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateUserBookings appends a booking to the current user's collection and
// writes the snapshot through to the cache before returning. A copy is also
// written to the document store best-effort; that failure is logged, never
// surfaced. No-op when nobody is signed in.
func (s *DefaultSessionService) UpdateUserBookings(ctx context.Context, booking models.Booking) {
	logger := utils.GetLogger()

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}

	if booking.ID == "" {
		booking.ID = "booking-" + uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingConfirmed
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	booking.UserID = s.user.ID

	s.gen++
	s.user.Bookings = append(s.user.Bookings, booking)
	token := s.cachedTokenLocked(ctx)
	s.writeThroughLocked(ctx, token)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if _, err := s.store.Insert(ctx, docstore.CollectionBookings, booking); err != nil {
		logger.Warn("session: failed to persist booking to document store", zap.String("bookingId", booking.ID), zap.Error(err))
	}

	s.notify(snapshot)
}

// DeleteBooking removes the matching booking by ID and writes through.
// Deleting an ID that is not present is a successful no-op. Returns a
// validation failure when nobody is signed in.
func (s *DefaultSessionService) DeleteBooking(ctx context.Context, bookingID string) AuthResult {
	logger := utils.GetLogger()

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return AuthResult{Success: false, Error: "user not logged in"}
	}

	kept := s.user.Bookings[:0:0]
	for _, b := range s.user.Bookings {
		if b.ID != bookingID {
			kept = append(kept, b)
		}
	}
	if kept == nil {
		kept = []models.Booking{}
	}

	s.gen++
	s.user.Bookings = kept
	token := s.cachedTokenLocked(ctx)
	s.writeThroughLocked(ctx, token)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.store.Delete(ctx, docstore.CollectionBookings, bookingID); err != nil {
		logger.Warn("session: failed to delete booking from document store", zap.String("bookingId", bookingID), zap.Error(err))
	}

	s.notify(snapshot)
	return AuthResult{Success: true}
}

// cachedTokenLocked returns the persisted session token so booking
// mutations rewrite the snapshot without disturbing it. Callers must hold
// s.mu.
func (s *DefaultSessionService) cachedTokenLocked(ctx context.Context) string {
	token, err := s.cache.Get(ctx, s.key(sessioncache.KeyAuthToken))
	if err != nil {
		return previewToken
	}
	return token
}
