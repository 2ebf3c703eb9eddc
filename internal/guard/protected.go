package guard

import (
	"context"
	"slices"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Set is an immutable set of protected identifiers.
type Set struct {
	values map[string]struct{}
}

// NewSet copies values into a new set.
func NewSet(values ...string) Set {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return Set{values: m}
}

// Contains reports whether v is protected.
func (s Set) Contains(v string) bool {
	_, ok := s.values[v]
	return ok
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Policy protects one entity family from hard deletion of critical records.
type Policy struct {
	Entity      string
	Alternative string
	Protected   Set
}

// Guard is the deletion check every service runs before a hard delete. It returns
// nil when the record may go and a *domain.ProtectedError naming the supported
// alternative when its identity is protected.
func (p Policy) Guard(rec domain.HasProtectedIdentity) error {
	id := rec.ProtectedIdentity()
	if !p.Protected.Contains(id.Value) {
		return nil
	}
	return &domain.ProtectedError{
		Entity:      p.Entity,
		Field:       id.Name,
		Value:       id.Value,
		Alternative: p.Alternative,
	}
}

// UsageCheck reports live references to a record, keyed by referring family.
type UsageCheck func(ctx context.Context, id string) (map[string]int, error)

// Referenced returns a *domain.ReferentialError when check finds any live reference.
func Referenced(ctx context.Context, entity, id string, check UsageCheck) error {
	refs, err := check(ctx, id)
	if err != nil {
		return err
	}
	live := make(map[string]int)
	for family, n := range refs {
		if n > 0 {
			live[family] = n
		}
	}
	if len(live) == 0 {
		return nil
	}
	return &domain.ReferentialError{Entity: entity, ID: id, References: live}
}
