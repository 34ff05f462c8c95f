// Package service provides business logic for the application.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/metrics"
	"github.com/pokevault/pokevault/internal/model"
	"github.com/pokevault/pokevault/internal/repository"
)

// Account service errors.
var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
)

// UserStore is the persistence capability AccountService depends on.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// AccountService handles registration and login.
type AccountService struct {
	users   UserStore
	hasher  *auth.Hasher
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder

	// decoyHash is verified against on login when no user matches the
	// email, so unknown-email and wrong-password take the same time.
	decoyHash string
}

// NewAccountService creates an AccountService.
func NewAccountService(users UserStore, hasher *auth.Hasher, tokens *auth.TokenIssuer, recorder metrics.Recorder) (*AccountService, error) {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	decoy := make([]byte, 16)
	if _, err := rand.Read(decoy); err != nil {
		return nil, fmt.Errorf("generate decoy password: %w", err)
	}
	decoyHash, err := hasher.Hash(hex.EncodeToString(decoy))
	if err != nil {
		return nil, fmt.Errorf("hash decoy password: %w", err)
	}

	return &AccountService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		metrics:   recorder,
		decoyHash: decoyHash,
	}, nil
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Register creates a new account, storing only the password hash.
// Returns ErrEmailExists when the email is already registered; the
// existing record is left untouched.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)

	if email == "" || username == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	if !strings.Contains(email, "@") {
		return nil, ErrMissingFields
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			s.metrics.IncRegistration("conflict")
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.metrics.IncRegistration("success")
	return user, nil
}

// Login verifies credentials and returns a fresh bearer token.
// Unknown email and wrong password are indistinguishable: both return
// ErrInvalidCredentials, and the unknown-email path still performs a
// hash verification so response timing does not leak which case it was.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = s.hasher.Verify(password, s.decoyHash)
			s.metrics.IncLogin("failure")
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLogin("failure")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin("success")
	return token, nil
}
