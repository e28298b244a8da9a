// Package auth holds user credentials server-side and issues session
// tokens. It replaces the original prototype's reversible base64
// "hash" in browser local storage with bcrypt digests held by an
// explicit store object.
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account is one registered user.
type Account struct {
	Name           string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}

// CredentialStore keeps current credentials per email, in memory.
// The sign-in audit log lives in the record store, not here.
type CredentialStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
	cost     int
}

// NewCredentialStore creates a store. cost <= 0 selects bcrypt's
// default cost.
func NewCredentialStore(cost int) *CredentialStore {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{
		accounts: make(map[string]Account),
		cost:     cost,
	}
}

// Register hashes password and stores the account. Registering an
// existing email fails; there is no account recovery in this system.
func (s *CredentialStore) Register(ctx context.Context, name, email, password string) (Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return Account{}, ErrMissingFields
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		return Account{}, ErrAccountExists
	}
	account := Account{
		Name:           name,
		Email:          email,
		PasswordDigest: string(digest),
		CreatedAt:      time.Now().UTC(),
	}
	s.accounts[email] = account
	return account, nil
}

// Verify checks email/password against the stored digest. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *CredentialStore) Verify(ctx context.Context, email, password string) (Account, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	account, ok := s.accounts[email]
	s.mu.RUnlock()
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordDigest), []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
