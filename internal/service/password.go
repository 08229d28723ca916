package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
)

const (
	// DefaultBcryptCost is the work factor used for stored passwords.
	DefaultBcryptCost = 10

	// MaxPasswordBytes is the longest input bcrypt hashes.
	MaxPasswordBytes = 72
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type bcryptHasher struct {
	cost int
}

func NewPasswordHasher(cost int) PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.PasswordTooLongErr
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt generate from password: %w", err)
	}
	return string(b), nil
}

func (h *bcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
