package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"sevahub/database/docstore"
	"sevahub/database/sessioncache"
	"sevahub/models"
	"sevahub/services/credential"
	"sevahub/services/directory"
	"sevahub/utils"

	"go.uber.org/zap"
)

// DefaultSessionService is the production implementation. One instance
// exists per client session; the Manager constructs and initializes it.
type DefaultSessionService struct {
	sessionID string
	backend   credential.Backend
	store     docstore.Store
	cache     sessioncache.Cache
	directory directory.DirectoryService

	initOnce sync.Once

	mu    sync.Mutex
	state string
	user  *models.User
	// gen increments on every explicitly committed operation. Async backend
	// listener resolutions capture gen when they start and are discarded if
	// a newer operation committed in the meantime.
	gen uint64

	subMu       sync.Mutex
	subs        map[int]func(*models.User)
	nextSub     int
	unsubscribe func()
}

// New creates an uninitialized session aggregate.
func New(sessionID string, backend credential.Backend, store docstore.Store, cache sessioncache.Cache, dir directory.DirectoryService) *DefaultSessionService {
	return &DefaultSessionService{
		sessionID: sessionID,
		backend:   backend,
		store:     store,
		cache:     cache,
		directory: dir,
		state:     StateUninitialized,
		subs:      make(map[int]func(*models.User)),
	}
}

func (s *DefaultSessionService) key(name string) string {
	return sessioncache.SessionKey(s.sessionID, name)
}

// Initialize adopts the cached snapshot when token and user data are both
// present, then attaches the credential backend listener. A backend
// signed-in report is authoritative and overwrites local state; a backend
// signed-out report while a cached token exists is ignored, preferring
// availability over consistency. Runs at most once; concurrent callers
// block until the first run completes.
func (s *DefaultSessionService) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.initialize(ctx) })
}

func (s *DefaultSessionService) initialize(ctx context.Context) {
	logger := utils.GetLogger()

	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	token, tokenErr := s.cache.Get(ctx, s.key(sessioncache.KeyAuthToken))
	userData, userErr := s.cache.Get(ctx, s.key(sessioncache.KeyUserData))

	if tokenErr == nil && userErr == nil && token != "" {
		var cached models.User
		if err := json.Unmarshal([]byte(userData), &cached); err != nil {
			logger.Warn("session: failed to parse cached user snapshot", zap.Error(err))
			if rmErr := s.cache.Remove(ctx, s.key(sessioncache.KeyUserData)); rmErr != nil {
				logger.Warn("session: failed to drop corrupt snapshot", zap.Error(rmErr))
			}
		} else {
			if cached.Bookings == nil {
				cached.Bookings = []models.Booking{}
			}
			s.mu.Lock()
			s.user = &cached
			s.state = StateAuthenticated
			snapshot := s.snapshotLocked()
			s.mu.Unlock()
			s.notify(snapshot)
		}
	}

	s.unsubscribe = s.backend.OnChange(func(id *credential.Identity) {
		s.resolveBackendIdentity(context.Background(), id)
	})

	s.mu.Lock()
	if s.state == StateLoading {
		s.state = StateAnonymous
	}
	s.mu.Unlock()
}

// Close detaches the backend listener.
func (s *DefaultSessionService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// resolveBackendIdentity handles an asynchronous identity report from the
// credential backend. The generation captured at entry guards the commit:
// if an explicit operation landed while this resolution was in flight, the
// stale result is discarded.
func (s *DefaultSessionService) resolveBackendIdentity(ctx context.Context, id *credential.Identity) {
	logger := utils.GetLogger()

	s.mu.Lock()
	startGen := s.gen
	s.mu.Unlock()

	if id == nil {
		// Signed-out report. The local snapshot wins when one exists.
		if _, err := s.cache.Get(ctx, s.key(sessioncache.KeyAuthToken)); err == nil {
			return
		}
		s.mu.Lock()
		if s.gen != startGen {
			s.mu.Unlock()
			return
		}
		s.user = nil
		s.state = StateAnonymous
		s.mu.Unlock()
		s.notify(nil)
		return
	}

	user := s.mergeProfile(ctx, id)

	token, err := s.backend.Token(ctx, id)
	if err != nil {
		logger.Warn("session: failed to obtain backend token", zap.Error(err))
		token = previewToken
	}

	s.mu.Lock()
	if s.gen != startGen {
		// A newer login/signup/logout committed first; discard.
		s.mu.Unlock()
		return
	}
	s.user = user
	s.state = StateAuthenticated
	s.writeThroughLocked(ctx, token)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// mergeProfile builds the session user for a backend identity, enriched
// with the document-store profile when one is available. Document-store
// failures degrade to the minimal identity fields.
func (s *DefaultSessionService) mergeProfile(ctx context.Context, id *credential.Identity) *models.User {
	name := id.DisplayName
	if name == "" {
		name = displayNameFromEmail(id.Email)
	}
	user := &models.User{
		ID:       id.UID,
		Name:     name,
		Email:    id.Email,
		Role:     models.RoleUser,
		Image:    models.PlaceholderAvatar,
		Bookings: []models.Booking{},
	}

	var profiles []models.User
	err := s.store.Find(ctx, docstore.CollectionUsers, []docstore.Filter{docstore.Eq("id", id.UID)}, nil, &profiles)
	if err != nil {
		utils.GetLogger().Warn("session: failed to fetch user profile from document store", zap.Error(err))
		return user
	}
	if len(profiles) == 0 {
		return user
	}

	profile := profiles[0]
	if id.DisplayName == "" && profile.Name != "" {
		user.Name = profile.Name
	}
	user.Phone = profile.Phone
	if profile.Role != "" {
		user.Role = profile.Role
	}
	if profile.AccountType != "" {
		user.AccountType = profile.AccountType
	}
	if profile.Bookings != nil {
		user.Bookings = profile.Bookings
	}
	user.BusinessName = profile.BusinessName
	user.Category = profile.Category
	user.Address = profile.Address
	user.City = profile.City
	user.Description = profile.Description
	return user
}

// writeThroughLocked persists the token and the current-user snapshot.
// Callers must hold s.mu; the write completes before the operation returns
// to its caller. Cache failures are logged, never surfaced.
func (s *DefaultSessionService) writeThroughLocked(ctx context.Context, token string) {
	logger := utils.GetLogger()
	if err := s.cache.Set(ctx, s.key(sessioncache.KeyAuthToken), token); err != nil {
		logger.Warn("session: failed to persist auth token", zap.Error(err))
	}
	raw, err := json.Marshal(s.user)
	if err != nil {
		logger.Error("session: failed to serialize user snapshot", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, s.key(sessioncache.KeyUserData), string(raw)); err != nil {
		logger.Warn("session: failed to persist user snapshot", zap.Error(err))
	}
}

// snapshotLocked copies the authoritative user so callers and subscribers
// never observe later mutations. Callers must hold s.mu.
func (s *DefaultSessionService) snapshotLocked() *models.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Bookings = append([]models.Booking(nil), s.user.Bookings...)
	return &u
}

// CurrentUser returns a copy of the authoritative user, or nil.
func (s *DefaultSessionService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// State reports the session lifecycle state.
func (s *DefaultSessionService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange registers a subscriber and returns an unsubscribe function.
// Subscribers receive a private copy of the user on every committed change.
func (s *DefaultSessionService) OnChange(fn func(user *models.User)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *DefaultSessionService) notify(user *models.User) {
	s.subMu.Lock()
	snapshot := make([]func(*models.User), 0, len(s.subs))
	for _, fn := range s.subs {
		snapshot = append(snapshot, fn)
	}
	s.subMu.Unlock()
	for _, fn := range snapshot {
		fn(user)
	}
}

// displayNameFromEmail derives a readable name from the local part of an
// email address.
func displayNameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	if local == "" {
		return "User"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
