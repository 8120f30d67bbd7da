package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/config"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/dto"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/session"
)

var ErrNotSignedIn = errors.New("no user is signed in")

type AuthService struct {
	session *session.Session
	cfg     *config.Config
	now     func() time.Time
}

func NewAuthService(sess *session.Session, cfg *config.Config) *AuthService {
	return &AuthService{session: sess, cfg: cfg, now: time.Now}
}

// GoogleSignIn decodes a Google credential and makes it the active identity.
func (s *AuthService) GoogleSignIn(ctx context.Context, credential string) (*dto.AuthResponse, error) {
	id, err := DecodeGoogleCredential(credential)
	if err != nil {
		slog.Warn("google credential rejected", "action", "sign_in", "error", err)
		return nil, err
	}
	return s.SignIn(ctx, id)
}

// SignIn switches the session to id and issues a session token for it.
func (s *AuthService) SignIn(ctx context.Context, id identity.Identity) (*dto.AuthResponse, error) {
	if id.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidCredential)
	}
	if err := s.session.SignIn(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	token, err := s.generateSessionToken(id)
	if err != nil {
		return nil, err
	}

	slog.Info("signed in", "user_id", id.ID, "action", "sign_in")
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(id)}, nil
}

func (s *AuthService) SignOut(ctx context.Context) error {
	current := s.session.Identity()
	if err := s.session.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	if current != nil {
		slog.Info("signed out", "user_id", current.ID, "action", "sign_out")
	}
	return nil
}

func (s *AuthService) Me() (*dto.UserResponse, error) {
	current := s.session.Identity()
	if current == nil {
		return nil, ErrNotSignedIn
	}
	u := dto.NewUserResponse(*current)
	return &u, nil
}

func (s *AuthService) generateSessionToken(id identity.Identity) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   id.ID,
		"name":  id.Name,
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}
