package credential

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sevahub/utils"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key="

// FirebaseBackend implements Backend on the Firebase Admin SDK. Password
// verification goes through the Identity Toolkit REST endpoint since the
// Admin SDK cannot check passwords itself.
type FirebaseBackend struct {
	notifier
	client    *auth.Client
	webAPIKey string
	httpc     *http.Client
}

// NewFirebaseBackend initializes the Firebase app and Auth client.
func NewFirebaseBackend(ctx context.Context, credentialsFile, webAPIKey string) (*FirebaseBackend, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	return &FirebaseBackend{
		client:    client,
		webAPIKey: webAPIKey,
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CreateAccount registers the account with Firebase Auth.
func (b *FirebaseBackend) CreateAccount(ctx context.Context, email, password, displayName string) (*Identity, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	rec, err := b.client.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("firebase: failed to create account: %w", err)
	}
	return &Identity{UID: rec.UID, Email: rec.Email, DisplayName: rec.DisplayName}, nil
}

// Verify checks email/password against the Identity Toolkit sign-in endpoint.
func (b *FirebaseBackend) Verify(ctx context.Context, email, password string) (*Identity, error) {
	payload, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("firebase: failed to encode sign-in request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signInEndpoint+b.webAPIKey, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("firebase: failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firebase: sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("firebase: invalid email or password")
	}

	var body struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("firebase: failed to decode sign-in response: %w", err)
	}

	return &Identity{UID: body.LocalID, Email: body.Email, DisplayName: body.DisplayName}, nil
}

// SignOut revokes the account's refresh tokens.
func (b *FirebaseBackend) SignOut(ctx context.Context, uid string) error {
	if err := b.client.RevokeRefreshTokens(ctx, uid); err != nil {
		utils.GetLogger().Warn("firebase: failed to revoke refresh tokens", zap.String("uid", uid), zap.Error(err))
		return fmt.Errorf("firebase: sign-out failed: %w", err)
	}
	b.notify(nil)
	return nil
}

// Token mints a custom token for the identity.
func (b *FirebaseBackend) Token(ctx context.Context, id *Identity) (string, error) {
	token, err := b.client.CustomToken(ctx, id.UID)
	if err != nil {
		return "", fmt.Errorf("firebase: failed to mint token: %w", err)
	}
	return token, nil
}
