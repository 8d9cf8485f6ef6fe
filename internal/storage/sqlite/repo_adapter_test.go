package sqlite

import (
	"context"
	"testing"

	"sqlddl/internal/storage"
)

// TestSQLiteStorageRegistrationUsesNewRepositoryHook verifies that the
// "sqlite" backend registered in init() uses the newRepository hook and that
// wrappedRepo delegates Close. It swaps a package global, so it is not
// parallel.
func TestSQLiteStorageRegistrationUsesNewRepositoryHook(t *testing.T) {
	ctx := context.Background()

	origNewRepository := newRepository
	defer func() { newRepository = origNewRepository }()

	var (
		called   bool
		gotCfg   Config
		closed   bool
		fakeRepo = &Repository{}
	)
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		called = true
		gotCfg = cfg
		return fakeRepo, func() { closed = true }, nil
	}

	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: "file:test.db?mode=memory"})
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if !called {
		t.Fatalf("newRepository hook was not called")
	}
	if gotCfg.DSN != "file:test.db?mode=memory" {
		t.Errorf("hook cfg.DSN = %q, want %q", gotCfg.DSN, "file:test.db?mode=memory")
	}

	w, ok := repo.(*wrappedRepo)
	if !ok {
		t.Fatalf("storage.New() type = %T, want *wrappedRepo", repo)
	}
	if w.Repository != fakeRepo {
		t.Fatalf("wrappedRepo.Repository = %p, want %p", w.Repository, fakeRepo)
	}

	repo.Close()
	if !closed {
		t.Fatalf("wrappedRepo.Close() did not invoke closeFn")
	}
}

func TestSQLiteStorageListed(t *testing.T) {
	found := false
	for _, k := range storage.ListKinds() {
		if k == "sqlite" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListKinds() = %v, want it to contain sqlite", storage.ListKinds())
	}
}
