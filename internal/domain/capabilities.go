package domain

// Field is a named value used by the guards.
type Field struct {
	Name  string
	Value string
}

// HasUniqueFields is implemented by families whose human-chosen keys must be unique.
// Fields are returned in declaration order, which is the order guards check them in.
type HasUniqueFields interface {
	UniqueFields() []Field
}

// HasProtectedIdentity is implemented by families that carry a field checked against
// a protected allow-list before deletion.
type HasProtectedIdentity interface {
	ProtectedIdentity() Field
}

// HasCategorySingleton is implemented by families that keep exactly one current record
// per category.
type HasCategorySingleton interface {
	SingletonCategory() string
	IsCurrentRecord() bool
}

// HasPublicationLifecycle is implemented by versioned content entities.
type HasPublicationLifecycle interface {
	PublicationStatus() PageStatus
	DraftVersion() int
}

// EntersPublished reports whether going from before to after publishes the entity.
func EntersPublished(before, after HasPublicationLifecycle) bool {
	return after.PublicationStatus() == PageStatusPublished &&
		before.PublicationStatus() != PageStatusPublished
}

// HasStatusFunnel is implemented by entities moved through the lead funnel.
type HasStatusFunnel interface {
	FunnelStatus() LeadStatus
}

// FunnelMoves reports whether sending rec to status changes its funnel position.
// Moving to the current position is a no-op that skips transition validation.
func FunnelMoves(rec HasStatusFunnel, status LeadStatus) bool {
	return rec.FunnelStatus() != status
}
