package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/config"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/session"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/storage"
)

const testSecret = "test-secret"

func googleToken(t *testing.T, claims GoogleClaims) string {
	t.Helper()
	// Any key works: the signature is never checked.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("google-key"))
	require.NoError(t, err)
	return signed
}

func newAuthService(t *testing.T) (*AuthService, *session.Session) {
	t.Helper()
	kv := storage.NewMemory()
	sess := session.New(identity.NewHolder(kv), relationship.NewStore(kv))
	require.NoError(t, sess.Start(context.Background()))
	return NewAuthService(sess, &config.Config{JWTSecret: testSecret, JWTExpiry: time.Hour}), sess
}

func TestDecodeGoogleCredential(t *testing.T) {
	token := googleToken(t, GoogleClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1234567890"},
		Name:             "Ada Lovelace",
		Email:            "ada@example.com",
		Picture:          "https://example.com/ada.png",
	})

	id, err := DecodeGoogleCredential(token)
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{
		ID:      "1234567890",
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Picture: "https://example.com/ada.png",
	}, id)
}

func TestDecodeGoogleCredential_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"not a jwt":   "definitely-not-a-token",
		"missing sub": googleToken(t, GoogleClaims{Name: "Nobody"}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeGoogleCredential(token)
			assert.ErrorIs(t, err, ErrInvalidCredential)
		})
	}
}

func TestAuthService_SignInIssuesSessionToken(t *testing.T) {
	svc, sess := newAuthService(t)

	resp, err := svc.SignIn(context.Background(), identity.Identity{ID: "u1", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "u1", sess.Store().UserID())

	parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "u1", sub)

	me, err := svc.Me()
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
}

func TestAuthService_GoogleSignIn(t *testing.T) {
	svc, sess := newAuthService(t)

	resp, err := svc.GoogleSignIn(context.Background(), googleToken(t, GoogleClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "g-1"},
		Email:            "g@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, "g-1", resp.User.ID)
	assert.Equal(t, "g-1", sess.Identity().ID)

	_, err = svc.GoogleSignIn(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.Equal(t, "g-1", sess.Identity().ID, "failed sign-in keeps the current identity")
}

func TestAuthService_SignOut(t *testing.T) {
	svc, sess := newAuthService(t)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, identity.Identity{ID: "u1"})
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx))

	_, err = svc.Me()
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Empty(t, sess.Store().UserID())

	_, err = svc.SignIn(ctx, identity.Identity{})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
