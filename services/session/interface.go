// Package session owns the answer to "who is the current user" for one
// client session. It reconciles three sources of truth: the credential
// backend (authoritative when reachable), the durable session cache
// (survives reloads, wins over a signed-out backend report), and the
// in-memory state served to callers. Every mutation writes through to the
// cache before returning, so cache and memory never diverge after an
// operation completes.
package session

import (
	"context"

	"sevahub/models"
)

// Session states. Transitions: UNINITIALIZED -> LOADING -> {AUTHENTICATED,
// ANONYMOUS}; AUTHENTICATED -> ANONYMOUS only via Logout; ANONYMOUS ->
// AUTHENTICATED via Login/Signup. There is no automatic expiry transition.
const (
	StateUninitialized = "UNINITIALIZED"
	StateLoading       = "LOADING"
	StateAuthenticated = "AUTHENTICATED"
	StateAnonymous     = "ANONYMOUS"
)

// AuthResult is the discriminated result returned by session mutations.
type AuthResult struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SignupRequest carries the signup form fields. Field validation is the
// caller's responsibility; the aggregate does not enforce it.
type SignupRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	AccountType  string `json:"accountType"` // "user" or "provider"
	BusinessName string `json:"businessName,omitempty"`
	Category     string `json:"category,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	Description  string `json:"description,omitempty"`
}

// SessionService is the UI-facing surface of the session aggregate.
type SessionService interface {
	// Initialize runs once at session start: adopts a cached snapshot when
	// present and attaches the credential backend change listener.
	Initialize(ctx context.Context)
	// Login verifies against the credential backend, falling back to a
	// deterministic local identity on any failure. The fallback path always
	// succeeds.
	Login(ctx context.Context, email, password, accountType string) AuthResult
	// Signup creates an account (backend plus document-store profile, with
	// local fallback). Provider signups are also appended to the provider
	// directory.
	Signup(ctx context.Context, req SignupRequest) AuthResult
	// Logout signs out of the backend best-effort and unconditionally
	// clears cache and memory.
	Logout(ctx context.Context)
	// UpdateUserBookings appends a booking to the current user. No-op when
	// nobody is signed in.
	UpdateUserBookings(ctx context.Context, booking models.Booking)
	// DeleteBooking removes a booking by ID. Removing an absent ID is a
	// successful no-op.
	DeleteBooking(ctx context.Context, bookingID string) AuthResult

	// CurrentUser returns the authoritative user, or nil when anonymous.
	CurrentUser() *models.User
	// State reports the session lifecycle state.
	State() string
	// OnChange registers a subscriber notified after every committed state
	// change (nil user signals sign-out, i.e. navigate to the landing
	// surface). Returns an unsubscribe function.
	OnChange(fn func(user *models.User)) (unsubscribe func())
}
