package auth

import (
	"context"
	"errors"
	"time"

	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued admin token stays valid.
const TokenTTL = 7 * 24 * time.Hour

const minPasswordLength = 8

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong password")
	ErrPasswordTooShort = errors.New("password too short")
)

// Store is the persistence the auth service needs.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type Service struct {
	users     Store
	tokens    *jwt.Signer
	failDelay time.Duration
}

func NewService(users Store, tokens *jwt.Signer) *Service {
	return &Service{users: users, tokens: tokens, failDelay: 3 * time.Second}
}

// Login verifies credentials and issues a signed token. Failures pay a
// fixed delay so guessing stays slow.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		time.Sleep(s.failDelay)
		return "", nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(s.failDelay)
		return "", nil, ErrWrongPassword
	}
	token, err := s.tokens.Sign(u.ID.Hex(), TokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// VerifyToken resolves a bearer token to the admin it was issued for. It
// implements middleware.TokenVerifier.
func (s *Service) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ChangePassword re-hashes after verifying the current password.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}
