package api

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// KeyHeader carries the API key on requests.
const KeyHeader = "X-API-Key"

// ErrEmptyKey is returned when hashing a blank key.
var ErrEmptyKey = errors.New("api key must not be empty")

// KeyChecker validates API keys against a bcrypt hash.
type KeyChecker struct {
	hash []byte
}

// NewKeyChecker returns a checker for hash, or nil if hash is empty, meaning
// authentication is disabled.
func NewKeyChecker(hash string) *KeyChecker {
	if hash == "" {
		return nil
	}
	return &KeyChecker{hash: []byte(hash)}
}

// Check reports whether key matches the configured hash. A nil checker
// accepts every key.
func (k *KeyChecker) Check(key string) bool {
	if k == nil {
		return true
	}
	if key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(k.hash, []byte(key)) == nil
}

// HashKey returns the bcrypt hash to configure as API_KEY_HASH for key.
func HashKey(key string, cost int) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}
	return string(hash), nil
}
