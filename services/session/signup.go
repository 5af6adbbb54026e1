package session

import (
	"context"
	"strings"
	"time"

	"sevahub/database/docstore"
	"sevahub/models"
	"sevahub/utils"

	"go.uber.org/zap"
)

// Signup creates an account against the backend plus a document-store
// profile write, falling back to a locally synthesized identity on any
// backend failure. Provider signups are additionally appended to the
// provider directory. Field validation is the caller's responsibility.
func (s *DefaultSessionService) Signup(ctx context.Context, req SignupRequest) AuthResult {
	logger := utils.GetLogger()
	if req.AccountType == "" {
		req.AccountType = models.AccountTypeUser
	}

	fullName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if req.AccountType == models.AccountTypeProvider && req.BusinessName != "" {
		fullName = req.BusinessName
	}

	strength := utils.CheckPasswordStrength(req.Password)
	if strength.Label == "Weak" {
		logger.Info("session: weak password accepted at signup", zap.Int("score", strength.Score))
	}

	var user *models.User
	token := previewToken

	id, err := s.backend.CreateAccount(ctx, req.Email, req.Password, fullName)
	if err == nil {
		user = s.buildSignupUser(req, id.UID, fullName)
		if insertErr := s.insertProfile(ctx, user); insertErr != nil {
			logger.Warn("session: failed to write user profile to document store", zap.Error(insertErr))
		}
		if t, terr := s.backend.Token(ctx, id); terr == nil {
			token = t
		} else {
			logger.Warn("session: failed to obtain backend token", zap.Error(terr))
		}
	} else {
		logger.Warn("session: backend signup failed, using local identity", zap.String("email", req.Email), zap.Error(err))
		mock := mockUser(req.Email, req.AccountType)
		user = s.buildSignupUser(req, mock.ID, fullName)
	}

	s.commit(ctx, user, token)

	if req.AccountType == models.AccountTypeProvider {
		s.directory.AddProvider(ctx, models.Provider{
			UserID:       user.ID,
			BusinessName: req.BusinessName,
			Description:  req.Description,
			Category:     req.Category,
			Address:      req.Address,
			City:         req.City,
			User:         models.ContactInfo{Name: fullName, Email: req.Email, Phone: req.Phone},
		})
	}

	return AuthResult{Success: true, User: user}
}

func (s *DefaultSessionService) buildSignupUser(req SignupRequest, uid, fullName string) *models.User {
	now := time.Now()
	user := &models.User{
		ID:          uid,
		Name:        fullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        models.RoleForAccountType(req.AccountType),
		AccountType: req.AccountType,
		Image:       models.PlaceholderAvatar,
		Bookings:    []models.Booking{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.AccountType == models.AccountTypeProvider {
		user.BusinessName = req.BusinessName
		user.Category = req.Category
		user.Address = req.Address
		user.City = req.City
		user.Description = req.Description
	}
	return user
}

func (s *DefaultSessionService) insertProfile(ctx context.Context, user *models.User) error {
	_, err := s.store.Insert(ctx, docstore.CollectionUsers, user)
	return err
}
