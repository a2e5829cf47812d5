package users

import (
	"strings"
	"sync"

	"github.com/feastline/feastline-backend/pkg/config"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/feastline/feastline-backend/pkg/security"
	"github.com/google/uuid"
)

// User is an account record. Only identity and authentication fields live
// here; carts, addresses, instruments and orders are session-scoped and do
// not survive a restart.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PasswordHash  string `json:"password_hash"`
	EmailVerified bool   `json:"email_verified"`
}

// Store is the in-memory user directory. It exposes plain snapshots so a
// persistence collaborator can durably store the allow-listed fields and
// rehydrate them wholesale at startup.
type Store struct {
	mu      sync.RWMutex
	users   []User
	byEmail map[string]int
	byID    map[string]int
}

// NewStore builds an empty user directory.
func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]int),
		byID:    make(map[string]int),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register hashes the password and appends a new user. Emails are unique.
func (s *Store) Register(name, email, password string, cfg config.PasswordConfig) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if len(password) < 8 {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	hash, err := security.HashPassword(password, cfg)
	if err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return User{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	s.byEmail[email] = len(s.users)
	s.byID[user.ID] = len(s.users)
	s.users = append(s.users, user)
	return user, nil
}

// Authenticate verifies the password for the email and returns the account.
// Unknown emails and wrong passwords produce the same error.
func (s *Store) Authenticate(email, password string) (User, error) {
	s.mu.RLock()
	idx, ok := s.byEmail[normalizeEmail(email)]
	var user User
	if ok {
		user = s.users[idx]
	}
	s.mu.RUnlock()

	if !ok {
		return User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !match {
		return User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return user, nil
}

// Get returns the user by id.
func (s *Store) Get(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx, ok := s.byID[id]; ok {
		return s.users[idx], nil
	}
	return User{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
}

// MarkEmailVerified flips the verification flag for the account.
func (s *Store) MarkEmailVerified(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	s.users[idx].EmailVerified = true
	return nil
}

// Snapshot returns a copy of every account for the persistence gateway.
func (s *Store) Snapshot() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// Rehydrate replaces the directory wholesale with a previously snapshotted
// state. Entries without an id or email are skipped.
func (s *Store) Rehydrate(snapshot []User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.byEmail = make(map[string]int)
	s.byID = make(map[string]int)
	for _, user := range snapshot {
		if user.ID == "" || user.Email == "" {
			continue
		}
		user.Email = normalizeEmail(user.Email)
		if _, dup := s.byEmail[user.Email]; dup {
			continue
		}
		s.byEmail[user.Email] = len(s.users)
		s.byID[user.ID] = len(s.users)
		s.users = append(s.users, user)
	}
}

// Count returns the number of accounts.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
