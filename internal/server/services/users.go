// Package services contains the business logic of the development backend.
// This file implements UserService: a bcrypt-backed in-memory account list
// that mints session tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/auth"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/config"
)

type UserService struct {
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int

	mu    sync.RWMutex
	users map[string][]byte
}

// NewUserService seeds the account list from cfg.Users (username to
// plain password).
func NewUserService(cfg *config.Config) (*UserService, error) {
	s := &UserService{
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
		users:         make(map[string][]byte, len(cfg.Users)),
	}
	for name, pw := range cfg.Users {
		if err := s.Register(context.Background(), name, pw); err != nil {
			return nil, fmt.Errorf("seed user %q: %w", name, err)
		}
	}
	return s, nil
}

// Register adds or replaces an account.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return common.ErrorInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = hash
	return nil
}

// Login checks the password and returns a signed token.
// Unknown users and wrong passwords both give common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	s.mu.RLock()
	hash, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return "", common.ErrorUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate returns the username a token was issued to.
func (s *UserService) Authenticate(token string) (string, error) {
	return auth.GetUsernameFromToken(token, s.jwtSecret)
}
