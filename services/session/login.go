package session

import (
	"context"

	"sevahub/database/sessioncache"
	"sevahub/models"
	"sevahub/services/credential"
	"sevahub/utils"

	"go.uber.org/zap"
)

// previewToken is the session token written when no backend token can be
// obtained, keeping reload behavior identical in fallback mode.
const previewToken = "preview-token"

// Login verifies credentials against the backend first. Any failure there
// (network, invalid credential, backend absent) falls back to a
// deterministic local identity synthesized from the email and requested
// account type, so login in fallback mode always succeeds.
func (s *DefaultSessionService) Login(ctx context.Context, email, password, accountType string) AuthResult {
	logger := utils.GetLogger()
	if accountType == "" {
		accountType = models.AccountTypeUser
	}

	var user *models.User
	token := previewToken

	id, err := s.backend.Verify(ctx, email, password)
	if err == nil {
		user = s.mergeProfile(ctx, id)
		if t, terr := s.backend.Token(ctx, id); terr == nil {
			token = t
		} else {
			logger.Warn("session: failed to obtain backend token", zap.Error(terr))
		}
		if user.AccountType == "" {
			// No stored profile; trust the requested account type.
			user.AccountType = accountType
			user.Role = models.RoleForAccountType(accountType)
		}
	} else {
		logger.Warn("session: backend login failed, using local identity", zap.String("email", email), zap.Error(err))
		user = mockUser(email, accountType)
	}

	s.commit(ctx, user, token)
	return AuthResult{Success: true, User: user}
}

// Logout signs out of the backend best-effort, then unconditionally clears
// the cache and in-memory state. Subscribers receive a nil user, the signal
// to navigate to the landing surface.
func (s *DefaultSessionService) Logout(ctx context.Context) {
	logger := utils.GetLogger()

	s.mu.Lock()
	uid := ""
	if s.user != nil {
		uid = s.user.ID
	}
	s.mu.Unlock()

	if uid != "" {
		if err := s.backend.SignOut(ctx, uid); err != nil {
			logger.Warn("session: backend sign-out failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.gen++
	s.user = nil
	s.state = StateAnonymous
	if err := s.cache.Remove(ctx, s.key(sessioncache.KeyAuthToken)); err != nil {
		logger.Warn("session: failed to clear auth token", zap.Error(err))
	}
	if err := s.cache.Remove(ctx, s.key(sessioncache.KeyUserData)); err != nil {
		logger.Warn("session: failed to clear user snapshot", zap.Error(err))
	}
	s.mu.Unlock()
	s.notify(nil)
}

// commit installs a user as the authoritative session identity and writes
// through to the cache before returning. Incrementing gen invalidates any
// in-flight backend listener resolution.
func (s *DefaultSessionService) commit(ctx context.Context, user *models.User, token string) {
	s.mu.Lock()
	s.gen++
	s.user = user
	s.state = StateAuthenticated
	s.writeThroughLocked(ctx, token)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// mockUser synthesizes the deterministic fallback identity: stable ID
// derived from the email, echoed email, and a role matching the requested
// account type.
func mockUser(email, accountType string) *models.User {
	return &models.User{
		ID:          credential.DeterministicUID(email),
		Name:        displayNameFromEmail(email),
		Email:       email,
		Role:        models.RoleForAccountType(accountType),
		AccountType: accountType,
		Image:       models.PlaceholderAvatar,
		Bookings:    []models.Booking{},
	}
}
