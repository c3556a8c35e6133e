package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"invitationgallery/internal/domain"
)

// DefaultBcryptCost is the work factor used for admin passwords.
const DefaultBcryptCost = 10

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher backed by bcrypt. bcrypt generates and
// embeds a random salt per hash, so no separate salt column is stored.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	if cost < DefaultBcryptCost {
		cost = DefaultBcryptCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
