package otel_test

import (
	"testing"

	_ "modernc.org/sqlite"

	"github.com/neomorfeo/siteadmin/internal/adapter/otel"
)

func TestOpenDB_AppliesPragmas(t *testing.T) {
	db, err := otel.OpenDB(t.TempDir() + "/content.db")
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestOpenDB_InvalidPath(t *testing.T) {
	if _, err := otel.OpenDB("/nonexistent/dir/content.db"); err == nil {
		t.Fatal("expected error for unwritable path, got nil")
	}
}
