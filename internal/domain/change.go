package domain

import "time"

// Action names what happened to a record.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionDeleted       Action = "deleted"
	ActionPublished     Action = "published"
	ActionPromoted      Action = "promoted"
	ActionStatusChanged Action = "status_changed"
)

// Change describes a committed mutation, emitted after the write succeeds.
type Change struct {
	Entity     string
	Action     Action
	EntityID   string
	Attributes map[string]string
	OccurredAt time.Time
}

// NewChange stamps a change with the current time.
func NewChange(entity string, action Action, id string, attrs map[string]string) Change {
	return Change{
		Entity:     entity,
		Action:     action,
		EntityID:   id,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
}
