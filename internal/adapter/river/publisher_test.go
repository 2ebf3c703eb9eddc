package river_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	goriver "github.com/riverqueue/river"

	_ "modernc.org/sqlite"

	riveradapter "github.com/neomorfeo/siteadmin/internal/adapter/river"
	"github.com/neomorfeo/siteadmin/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := t.TempDir() + "/river_test.db"
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		t.Fatalf("setting WAL: %v", err)
	}

	return db
}

// startClient builds a running client and returns its completion stream.
func startClient(t *testing.T) (*riveradapter.Client, <-chan *goriver.Event) {
	t.Helper()

	client, err := riveradapter.Setup(context.Background(), setupTestDB(t), riveradapter.Options{MaxWorkers: 1})
	if err != nil {
		t.Fatalf("river setup: %v", err)
	}

	// Subscribe before starting so no completion is missed.
	events, cancel := client.Subscribe(goriver.EventKindJobCompleted)
	t.Cleanup(cancel)

	if err := client.Start(context.Background()); err != nil {
		t.Fatalf("river start: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Stop(stopCtx); err != nil {
			t.Errorf("river stop: %v", err)
		}
	})

	return client, events
}

func TestPublisher_Publish_EnqueuesJob(t *testing.T) {
	client, events := startClient(t)
	pub := riveradapter.NewPublisher(client)

	change := domain.NewChange("page", domain.ActionPublished, "p-1", nil)
	if err := pub.Publish(context.Background(), change); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case event := <-events:
		if event.Job.Kind != "change.published" {
			t.Errorf("job kind = %q, want %q", event.Job.Kind, "change.published")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job completion")
	}
}

func TestPublisher_Publish_PreservesChangeData(t *testing.T) {
	client, events := startClient(t)
	pub := riveradapter.NewPublisher(client)

	change := domain.NewChange("lead", domain.ActionStatusChanged, "l-42", map[string]string{
		"from": "new",
		"to":   "contacted",
	})
	if err := pub.Publish(context.Background(), change); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case event := <-events:
		args := string(event.Job.EncodedArgs)
		for _, want := range []string{
			`"entity":"lead"`,
			`"action":"status_changed"`,
			`"entity_id":"l-42"`,
			`"to":"contacted"`,
		} {
			if !strings.Contains(args, want) {
				t.Errorf("encoded args missing %s, got: %s", want, args)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job completion")
	}
}
