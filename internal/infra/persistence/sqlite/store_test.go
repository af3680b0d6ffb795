package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"aisumo/pkg/domain"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	store, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	if store.Path() != path {
		t.Fatalf("unexpected path %s", store.Path())
	}
	if err := store.Upsert(ctx, domain.TableCategories, "slug", domain.Row{"slug": "chatbots", "label": "Chatbots", "sort_order": 3}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	rows, err := reloaded.Select(ctx, domain.TableCategories, domain.Query{})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 1 || rows[0]["slug"] != "chatbots" || rows[0]["is_active"] != true {
		t.Fatalf("unexpected rows after reload: %v", rows)
	}
}

func TestSQLiteStoreCreatesEveryTable(t *testing.T) {
	store, err := NewStore(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	for _, table := range domain.Tables {
		var name string
		if err := store.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name); err != nil {
			t.Fatalf("lookup %s table: %v", table, err)
		}
	}
}
