package credential

import (
	"context"

	"sevahub/config"
	"sevahub/utils"

	"go.uber.org/zap"
)

// Probe selects the credential backend once at startup. Firebase is used
// when credentials are configured and the app initializes; any failure
// falls back to the local backend. Call sites receive the chosen backend
// by injection and never re-check availability.
func Probe(ctx context.Context) Backend {
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if cfg.FirebaseCredentialsFile == "" {
		logger.Info("credential: no Firebase credentials configured, using local backend")
		return NewLocalBackend()
	}

	backend, err := NewFirebaseBackend(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseWebAPIKey)
	if err != nil {
		logger.Warn("credential: Firebase initialization failed, using local backend", zap.Error(err))
		return NewLocalBackend()
	}

	logger.Info("credential: using Firebase backend")
	return backend
}
