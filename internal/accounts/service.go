// Package accounts holds the credential rules behind signup and login.
package accounts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/coastalbeacon/beacon/internal/domain/user"
)

// bcrypt ignores input past this many bytes.
const maxPasswordBytes = 72

type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Check(hash, plain string) error
}

type TokenIssuer interface {
	GenerateAccessToken(userID, email string) (string, time.Time, error)
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	log    *slog.Logger
}

func NewService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// Register creates a user after checking the payload and email uniqueness.
// The existence check and the insert are separate statements; a concurrent
// duplicate that slips between them is caught by the store's unique index and
// reported as ErrConflict as well.
func (s *Service) Register(ctx context.Context, req user.SignUpRequest) (user.User, error) {
	if err := validateSignUp(req); err != nil {
		return user.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		return user.User{}, storeErr("check email", err)
	}
	if exists {
		return user.User{}, ErrConflict
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return user.User{}, err
	}

	u := user.NewFromSignUp(req, hash)

	err = s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			return user.User{}, ErrConflict
		}
		return user.User{}, storeErr("insert user", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)

	return u, nil
}

// Authenticate checks an email/password pair and mints a token on success.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, &ValidationError{Reason: "missing credentials"}
	}

	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrNotFound
		}
		return Session{}, storeErr("lookup user", err)
	}

	if err := s.hasher.Check(u.PasswordHash, password); err != nil {
		s.log.DebugContext(ctx, "login rejected", "user_id", u.ID)
		return Session{}, ErrAuth
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func validateSignUp(req user.SignUpRequest) error {
	if req.Username == "" || req.Mobile == "" || req.Email == "" || req.Password == "" {
		return &ValidationError{Reason: "missing required fields"}
	}

	switch {
	case !user.ValidUsername(req.Username):
		return &ValidationError{Field: "username", Reason: "is malformed"}
	case !user.ValidMobile(req.Mobile):
		return &ValidationError{Field: "mobile", Reason: "must be 10 digits"}
	case !user.ValidEmail(req.Email):
		return &ValidationError{Field: "email", Reason: "is malformed"}
	case len(req.Password) > maxPasswordBytes:
		return &ValidationError{Field: "password", Reason: "is too long"}
	}

	return nil
}
