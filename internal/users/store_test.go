package users

import (
	"context"
	"testing"
	"time"

	"github.com/feastline/feastline-backend/pkg/config"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	redislib "github.com/redis/go-redis/v9"
)

func fastPasswords() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := NewStore()

	user, err := store.Register("Asha Rao", "Asha@Example.com", "correct-horse", fastPasswords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	got, err := store.Authenticate("asha@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatal("expected the registered account back")
	}

	if _, err := store.Authenticate("asha@example.com", "wrong"); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := store.Authenticate("nobody@example.com", "whatever"); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	store := NewStore()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "a@example.com", "long-enough"},
		{"bad email", "Asha", "not-an-email", "long-enough"},
		{"short password", "Asha", "a@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Register(tc.userName, tc.email, tc.password, fastPasswords()); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := NewStore()

	store.Register("Asha", "a@example.com", "long-enough", fastPasswords())
	if _, err := store.Register("Another", "A@Example.com", "long-enough", fastPasswords()); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSnapshotRehydrate_RoundTrip(t *testing.T) {
	store := NewStore()
	store.Register("Asha", "a@example.com", "long-enough", fastPasswords())
	user, _ := store.Register("Ravi", "r@example.com", "long-enough", fastPasswords())
	store.MarkEmailVerified(user.ID)

	fresh := NewStore()
	fresh.Rehydrate(store.Snapshot())

	if fresh.Count() != 2 {
		t.Fatalf("expected two accounts, got %d", fresh.Count())
	}
	got, err := fresh.Get(user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.EmailVerified {
		t.Fatal("expected verification flag to survive rehydration")
	}
	if _, err := fresh.Authenticate("r@example.com", "long-enough"); err != nil {
		t.Fatalf("expected credentials to survive rehydration: %v", err)
	}
}

// fakeDirectoryStore stands in for the redis client.
type fakeDirectoryStore struct {
	data map[string]string
}

func (f *fakeDirectoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.data == nil {
		f.data = make(map[string]string)
	}
	f.data[key] = value.(string)
	return nil
}

func (f *fakeDirectoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (f *fakeDirectoryStore) UserDirectoryKey() string { return "fl:profile:directory" }

func TestGateway_SaveAndLoad(t *testing.T) {
	store := NewStore()
	store.Register("Asha", "a@example.com", "long-enough", fastPasswords())

	gateway, err := NewGateway(&fakeDirectoryStore{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gateway.Save(context.Background(), store); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	fresh := NewStore()
	if err := gateway.Load(context.Background(), fresh); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if fresh.Count() != 1 {
		t.Fatalf("expected one rehydrated account, got %d", fresh.Count())
	}
}

func TestGateway_MissingSnapshotIsNotAnError(t *testing.T) {
	gateway, _ := NewGateway(&fakeDirectoryStore{})
	fresh := NewStore()
	if err := gateway.Load(context.Background(), fresh); err != nil {
		t.Fatalf("expected missing snapshot to load empty, got %v", err)
	}
	if fresh.Count() != 0 {
		t.Fatal("expected empty directory")
	}
}
