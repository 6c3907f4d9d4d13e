package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/threatlens/threatlens-api/internal/logging"
	"github.com/threatlens/threatlens-api/internal/user"
)

// Credentials is the email/password pair accepted by Register and Login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// Service handles authentication business logic
type Service struct {
	users               UserStore
	tokens              TokenService
	hasher              PasswordHasher
	logger              *logging.Logger
	accessTokenDuration time.Duration

	// dummyHash is compared against on unknown emails so that both login
	// failure branches pay for one hash verification
	dummyHash string
}

func NewService(
	users UserStore,
	tokens TokenService,
	hasher PasswordHasher,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
) (*Service, error) {
	dummyHash, err := hasher.Hash(randomString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		users:               users,
		tokens:              tokens,
		hasher:              hasher,
		logger:              logger,
		accessTokenDuration: accessTokenDuration,
		dummyHash:           dummyHash,
	}, nil
}

// Register creates a new identity. It does not issue a token; the client
// logs in separately.
func (s *Service) Register(ctx context.Context, email, password string) error {
	if err := (Credentials{Email: email, Password: password}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCredentialsRequired, err)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrUserExists
	case !errors.Is(err, user.ErrNotFound):
		return fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, email, passwordHash)
	if err != nil {
		// a concurrent registration can win between the lookup and the insert
		if errors.Is(err, user.ErrDuplicateEmail) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("identity created", "user_id", created.ID)
	return nil
}

// Login verifies the credentials and returns a signed bearer token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if err := (Credentials{Email: email, Password: password}).Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCredentialsRequired, err)
	}

	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.hasher.Compare(existingUser.PasswordHash, password); err != nil {
		if !errors.Is(err, ErrPasswordMismatch) {
			s.logger.Warn("stored password hash could not be verified", "user_id", existingUser.ID, "error", err)
		}
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existingUser.ID, existingUser.Email, s.accessTokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}

	return token, nil
}

func randomString() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
