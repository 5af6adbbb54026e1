package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"sevahub/database/docstore"
	"sevahub/database/sessioncache"
	"sevahub/models"
	"sevahub/services/credential"
	"sevahub/services/directory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*DefaultSessionService, sessioncache.Cache, *docstore.MemoryStore, *directory.DefaultDirectoryService) {
	t.Helper()
	ctx := context.Background()
	cache := sessioncache.NewMemoryCache()
	store := docstore.NewMemoryStore()
	dir := directory.NewDirectoryService(ctx, cache)
	s := New("test-session", credential.NewLocalBackend(), store, cache, dir)
	s.Initialize(ctx)
	return s, cache, store, dir
}

func TestLoginEchoesEmailDeterministically(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()

	first := s.Login(ctx, "a@b.com", "whatever", models.AccountTypeUser)
	require.True(t, first.Success)
	assert.Equal(t, "a@b.com", first.User.Email)

	second := s.Login(ctx, "a@b.com", "different-password", models.AccountTypeUser)
	require.True(t, second.Success)
	assert.Equal(t, first.User.ID, second.User.ID, "same email must resolve to the same identity")
}

func TestLoginFreshSessionPopulatesCache(t *testing.T) {
	s, cache, _, _ := newTestSession(t)
	ctx := context.Background()

	result := s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser)
	require.True(t, result.Success)

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, StateAuthenticated, s.State())

	snapshot, err := cache.Get(ctx, sessioncache.SessionKey("test-session", sessioncache.KeyUserData))
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot)

	token, err := cache.Get(ctx, sessioncache.SessionKey("test-session", sessioncache.KeyAuthToken))
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginAsProviderSetsProviderRole(t *testing.T) {
	s, _, _, _ := newTestSession(t)

	result := s.Login(context.Background(), "biz@example.com", "pw", models.AccountTypeProvider)
	require.True(t, result.Success)
	assert.Equal(t, models.RoleProvider, result.User.Role)
}

func TestSignupProviderAppearsInDirectory(t *testing.T) {
	s, _, _, dir := newTestSession(t)
	ctx := context.Background()

	result := s.Signup(ctx, SignupRequest{
		Email:        "fix@example.com",
		Password:     "Str0ng!pass",
		Phone:        "+91 90000 00000",
		AccountType:  models.AccountTypeProvider,
		BusinessName: "FixIt Repairs",
		Category:     "plumbing",
		Address:      "12 Canal Road",
		City:         "Pune",
		Description:  "Emergency plumbing repairs.",
	})
	require.True(t, result.Success)

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, models.RoleProvider, user.Role)
	assert.Equal(t, "FixIt Repairs", user.BusinessName)

	var found bool
	for _, p := range dir.GetProvidersByCategory("plumbing") {
		if p.BusinessName == "FixIt Repairs" {
			found = true
			assert.Equal(t, user.ID, p.UserID)
			assert.False(t, p.Verified)
			assert.Zero(t, p.Rating)
		}
	}
	assert.True(t, found, "provider signup must append to the directory")
}

func TestSignupUserWritesProfileToStore(t *testing.T) {
	s, _, store, _ := newTestSession(t)
	ctx := context.Background()

	result := s.Signup(ctx, SignupRequest{
		FirstName:   "Asha",
		LastName:    "Rao",
		Email:       "asha@example.com",
		Password:    "Str0ng!pass",
		AccountType: models.AccountTypeUser,
	})
	require.True(t, result.Success)
	assert.Equal(t, "Asha Rao", result.User.Name)

	var profiles []models.User
	err := store.Find(ctx, docstore.CollectionUsers, []docstore.Filter{docstore.Eq("email", "asha@example.com")}, nil, &profiles)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, result.User.ID, profiles[0].ID)
}

func TestLogoutClearsEverything(t *testing.T) {
	s, cache, _, _ := newTestSession(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser).Success)

	var gotNil bool
	unsub := s.OnChange(func(u *models.User) {
		if u == nil {
			gotNil = true
		}
	})
	defer unsub()

	s.Logout(ctx)

	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, StateAnonymous, s.State())
	assert.True(t, gotNil, "subscribers must receive the sign-out signal")

	_, err := cache.Get(ctx, sessioncache.SessionKey("test-session", sessioncache.KeyAuthToken))
	assert.ErrorIs(t, err, sessioncache.ErrNotFound)
	_, err = cache.Get(ctx, sessioncache.SessionKey("test-session", sessioncache.KeyUserData))
	assert.ErrorIs(t, err, sessioncache.ErrNotFound)
}

func TestUpdateUserBookingsWriteThrough(t *testing.T) {
	s, cache, _, _ := newTestSession(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser).Success)

	s.UpdateUserBookings(ctx, models.Booking{
		ServiceID:  "service1",
		ProviderID: "provider1",
		Date:       "2026-09-01",
		Time:       "10:00 AM",
		Address:    "789 Customer Lane",
		City:       "Delhi",
		ZipCode:    "110001",
	})

	user := s.CurrentUser()
	require.NotNil(t, user)
	require.Len(t, user.Bookings, 1)
	booking := user.Bookings[0]
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, user.ID, booking.UserID)

	// The cached snapshot must match in-memory state exactly.
	snapshot, err := cache.Get(ctx, sessioncache.SessionKey("test-session", sessioncache.KeyUserData))
	require.NoError(t, err)
	expected, err := json.Marshal(user)
	require.NoError(t, err)
	assert.Equal(t, string(expected), snapshot)
}

func TestUpdateUserBookingsNoUserIsNoop(t *testing.T) {
	s, cache, _, _ := newTestSession(t)
	ctx := context.Background()

	s.UpdateUserBookings(ctx, models.Booking{ServiceID: "service1"})

	assert.Nil(t, s.CurrentUser())
	_, err := cache.Get(ctx, sessioncache.SessionKey("test-session", sessioncache.KeyUserData))
	assert.ErrorIs(t, err, sessioncache.ErrNotFound)
}

func TestDeleteBookingRemovesExactlyOne(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser).Success)
	s.UpdateUserBookings(ctx, models.Booking{ID: "b1", ServiceID: "service1"})
	s.UpdateUserBookings(ctx, models.Booking{ID: "b2", ServiceID: "service2"})

	result := s.DeleteBooking(ctx, "b1")
	require.True(t, result.Success)

	user := s.CurrentUser()
	require.Len(t, user.Bookings, 1)
	assert.Equal(t, "b2", user.Bookings[0].ID)
}

func TestDeleteBookingUnknownIDIsIdempotent(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser).Success)
	s.UpdateUserBookings(ctx, models.Booking{ID: "b1", ServiceID: "service1"})

	result := s.DeleteBooking(ctx, "no-such-booking")
	assert.True(t, result.Success, "deleting an absent booking is a designed no-op")
	assert.Len(t, s.CurrentUser().Bookings, 1)
}

func TestDeleteBookingWithoutUserFails(t *testing.T) {
	s, _, _, _ := newTestSession(t)

	result := s.DeleteBooking(context.Background(), "b1")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestInitializeAdoptsCachedSnapshot(t *testing.T) {
	ctx := context.Background()
	cache := sessioncache.NewMemoryCache()
	store := docstore.NewMemoryStore()
	dir := directory.NewDirectoryService(ctx, cache)

	cached := models.User{ID: "user9", Name: "Cached User", Email: "cached@example.com", Role: models.RoleUser}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, sessioncache.SessionKey("sid", sessioncache.KeyUserData), string(raw)))
	require.NoError(t, cache.Set(ctx, sessioncache.SessionKey("sid", sessioncache.KeyAuthToken), "tok"))

	s := New("sid", credential.NewLocalBackend(), store, cache, dir)
	s.Initialize(ctx)

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "cached@example.com", user.Email)
	assert.NotNil(t, user.Bookings, "missing booking collections default to empty")
	assert.Empty(t, user.Bookings)
	assert.Equal(t, StateAuthenticated, s.State())
}

func TestInitializeWithoutCacheIsAnonymous(t *testing.T) {
	ctx := context.Background()
	cache := sessioncache.NewMemoryCache()
	s := New("sid", credential.NewLocalBackend(), docstore.NewMemoryStore(), cache, directory.NewDirectoryService(ctx, cache))
	s.Initialize(ctx)

	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, StateAnonymous, s.State())
}

// slowTokenBackend lets a test hold an in-flight listener resolution open
// while an explicit login commits underneath it.
type slowTokenBackend struct {
	mu       sync.Mutex
	listener credential.Listener
	entered  chan struct{}
	release  chan struct{}
	slowUID  string
}

func (b *slowTokenBackend) CreateAccount(ctx context.Context, email, password, displayName string) (*credential.Identity, error) {
	return &credential.Identity{UID: credential.DeterministicUID(email), Email: email, DisplayName: displayName}, nil
}

func (b *slowTokenBackend) Verify(ctx context.Context, email, password string) (*credential.Identity, error) {
	return &credential.Identity{UID: credential.DeterministicUID(email), Email: email}, nil
}

func (b *slowTokenBackend) SignOut(ctx context.Context, uid string) error { return nil }

func (b *slowTokenBackend) OnChange(l credential.Listener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = l
	return func() {}
}

func (b *slowTokenBackend) Token(ctx context.Context, id *credential.Identity) (string, error) {
	if id.UID == b.slowUID {
		close(b.entered)
		<-b.release
	}
	return "token-" + id.UID, nil
}

func (b *slowTokenBackend) fire(id *credential.Identity) {
	b.mu.Lock()
	l := b.listener
	b.mu.Unlock()
	l(id)
}

func TestStaleListenerResolutionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	cache := sessioncache.NewMemoryCache()
	backend := &slowTokenBackend{entered: make(chan struct{}), release: make(chan struct{}), slowUID: "stale-uid"}
	s := New("sid", backend, docstore.NewMemoryStore(), cache, directory.NewDirectoryService(ctx, cache))
	s.Initialize(ctx)

	// A backend listener resolution starts and stalls fetching its token.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		backend.fire(&credential.Identity{UID: "stale-uid", Email: "stale@example.com"})
	}()
	<-backend.entered

	// An explicit login commits while the resolution is in flight.
	result := s.Login(ctx, "fresh@example.com", "pw", models.AccountTypeUser)
	require.True(t, result.Success)

	// Let the stale resolution finish; it must be discarded.
	close(backend.release)
	wg.Wait()

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "fresh@example.com", user.Email, "a stale listener resolution must not clobber a newer login")
}

func TestSessionsDoNotShareBackendIdentity(t *testing.T) {
	ctx := context.Background()
	cache := sessioncache.NewMemoryCache()
	store := docstore.NewMemoryStore()
	dir := directory.NewDirectoryService(ctx, cache)
	backend := credential.NewLocalBackend()

	a := New("session-a", backend, store, cache, dir)
	a.Initialize(ctx)
	b := New("session-b", backend, store, cache, dir)
	b.Initialize(ctx)

	result := a.Login(ctx, "a@b.com", "pw", models.AccountTypeUser)
	require.True(t, result.Success)
	require.NotNil(t, a.CurrentUser())

	// A login on one session must never authenticate another.
	assert.Nil(t, b.CurrentUser())
	assert.Equal(t, StateAnonymous, b.State())
}

func TestSubscribersReceiveCopies(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()

	var seen *models.User
	unsub := s.OnChange(func(u *models.User) {
		if u != nil {
			seen = u
		}
	})
	defer unsub()

	require.True(t, s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser).Success)
	require.NotNil(t, seen)

	seen.Email = "mutated@example.com"
	assert.Equal(t, "a@b.com", s.CurrentUser().Email, "subscriber mutations must not reach session state")

	s.UpdateUserBookings(ctx, models.Booking{ID: "b1", ServiceID: "service1"})
	require.Len(t, seen.Bookings, 1)
	seen.Bookings[0].ID = "mutated"
	assert.Equal(t, "b1", s.CurrentUser().Bookings[0].ID)
}

// registrationCountingBackend counts listener registrations on top of the
// local backend.
type registrationCountingBackend struct {
	*credential.LocalBackend
	mu            sync.Mutex
	registrations int
}

func (b *registrationCountingBackend) OnChange(l credential.Listener) func() {
	b.mu.Lock()
	b.registrations++
	b.mu.Unlock()
	return b.LocalBackend.OnChange(l)
}

func TestInitializeRunsOnce(t *testing.T) {
	ctx := context.Background()
	cache := sessioncache.NewMemoryCache()
	backend := &registrationCountingBackend{LocalBackend: credential.NewLocalBackend()}
	s := New("sid", backend, docstore.NewMemoryStore(), cache, directory.NewDirectoryService(ctx, cache))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Initialize(ctx)
		}()
	}
	wg.Wait()
	s.Initialize(ctx)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, 1, backend.registrations, "the backend listener attaches exactly once per session")
}

func TestBackendSignedOutKeepsLocalSnapshot(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()

	require.True(t, s.Login(ctx, "a@b.com", "pw", models.AccountTypeUser).Success)

	// A signed-out report while a cached token exists must not force logout.
	s.resolveBackendIdentity(ctx, nil)

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, StateAuthenticated, s.State())
}
