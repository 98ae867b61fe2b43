// Package storetest opens throwaway in-memory sqlite stores for tests.
package storetest

import (
	"testing"

	"collegeconnect/internal/credential"
	"collegeconnect/internal/domain"
	"collegeconnect/internal/store"
	"collegeconnect/pkg/db"

	"github.com/google/uuid"
)

// FastHashing is a cheap argon2id policy so tests that create users stay quick.
var FastHashing = credential.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

// New returns a migrated store backed by a private in-memory database.
// A single connection keeps every query on the same memory database.
func New(t *testing.T) *store.Store {
	t.Helper()

	prev := credential.Policy
	credential.Policy = FastHashing
	t.Cleanup(func() { credential.Policy = prev })

	dsn := "sqlite:file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=off"
	gdb, err := db.OpenGorm(db.Config{DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(domain.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return store.New(gdb)
}
