package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicUIDIsStable(t *testing.T) {
	a := DeterministicUID("a@b.com")
	b := DeterministicUID("a@b.com")
	other := DeterministicUID("c@d.com")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, "user-")
}

func TestCreateAccountAndVerify(t *testing.T) {
	b := NewLocalBackend()
	ctx := context.Background()

	id, err := b.CreateAccount(ctx, "asha@example.com", "s3cret!", "Asha Rao")
	require.NoError(t, err)
	assert.Equal(t, DeterministicUID("asha@example.com"), id.UID)
	assert.Equal(t, "Asha Rao", id.DisplayName)

	verified, err := b.Verify(ctx, "asha@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, id.UID, verified.UID)

	_, err = b.Verify(ctx, "asha@example.com", "wrong")
	assert.Error(t, err, "known accounts must check their password")
}

func TestCreateAccountRejectsDuplicates(t *testing.T) {
	b := NewLocalBackend()
	ctx := context.Background()

	_, err := b.CreateAccount(ctx, "asha@example.com", "s3cret!", "Asha")
	require.NoError(t, err)
	_, err = b.CreateAccount(ctx, "asha@example.com", "other", "Asha")
	assert.Error(t, err)
}

func TestVerifyUnknownEmailSucceeds(t *testing.T) {
	b := NewLocalBackend()

	id, err := b.Verify(context.Background(), "nobody@example.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, DeterministicUID("nobody@example.com"), id.UID)
	assert.Equal(t, "nobody@example.com", id.Email)
}

func TestTokenIsSignedJWT(t *testing.T) {
	b := NewLocalBackend()

	tok, err := b.Token(context.Background(), &Identity{UID: "user-abc", Email: "a@b.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.NotEqual(t, "preview-token", tok)
}

func TestListenerReceivesOnlyOutOfBandChanges(t *testing.T) {
	b := NewLocalBackend()
	ctx := context.Background()

	var events []*Identity
	unsub := b.OnChange(func(id *Identity) {
		events = append(events, id)
	})

	// Explicit operations return their identity to the caller; they must
	// not be broadcast to listeners on the shared backend.
	_, err := b.CreateAccount(ctx, "asha@example.com", "s3cret!", "Asha")
	require.NoError(t, err)
	_, err = b.Verify(ctx, "asha@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Empty(t, events)

	require.NoError(t, b.SignOut(ctx, "user-abc"))
	require.Len(t, events, 1)
	assert.Nil(t, events[0], "sign-out reports a nil identity")

	unsub()
	require.NoError(t, b.SignOut(ctx, "user-abc"))
	assert.Len(t, events, 1, "unsubscribed listeners stay quiet")
}
