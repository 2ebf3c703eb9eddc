package river

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// ChangeJobArgs carries a committed change through the queue. River stores
// it as JSON, so the worker never reads the record back from the database.
type ChangeJobArgs struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	EntityID   string            `json:"entity_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (ChangeJobArgs) Kind() string { return "change.published" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues the change as an async job.
func (p *Publisher) Publish(ctx context.Context, change domain.Change) error {
	_, err := p.client.Insert(ctx, ChangeJobArgs{
		Entity:     change.Entity,
		Action:     string(change.Action),
		EntityID:   change.EntityID,
		Attributes: change.Attributes,
		OccurredAt: change.OccurredAt,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing change job: %w", err)
	}
	return nil
}
