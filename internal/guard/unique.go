// Package guard holds the read-only checks that run before a mutating write and the
// current-record selector that runs inside it.
package guard

import (
	"context"
	"errors"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Lookup resolves a unique value to the id of the record owning it. It returns an
// error matching domain.ErrNotFound when no record owns the value.
type Lookup func(ctx context.Context, value string) (string, error)

// Uniqueness is the outcome of a single uniqueness check.
type Uniqueness struct {
	Conflict      bool
	ConflictingID string
}

// CheckUnique reports whether a record other than excludeID owns value.
// An empty excludeID (create) treats any owner as a conflict.
func CheckUnique(ctx context.Context, lookup Lookup, value, excludeID string) (Uniqueness, error) {
	id, err := lookup(ctx, value)
	if errors.Is(err, domain.ErrNotFound) {
		return Uniqueness{}, nil
	}
	if err != nil {
		return Uniqueness{}, err
	}
	if excludeID != "" && id == excludeID {
		return Uniqueness{}, nil
	}
	return Uniqueness{Conflict: true, ConflictingID: id}, nil
}

// Lookups maps a guarded field name to its lookup.
type Lookups map[string]Lookup

// Unique checks fields in order and stops at the first conflict, returned as a
// *domain.ConflictError. Fields without a registered lookup are skipped.
func Unique(ctx context.Context, entity, excludeID string, lookups Lookups, fields ...domain.Field) error {
	for _, f := range fields {
		lookup, ok := lookups[f.Name]
		if !ok {
			continue
		}
		res, err := CheckUnique(ctx, lookup, f.Value, excludeID)
		if err != nil {
			return err
		}
		if res.Conflict {
			return &domain.ConflictError{Entity: entity, Field: f.Name, Value: f.Value}
		}
	}
	return nil
}

// Changed returns the unique fields of after whose value differs from before,
// in declaration order. Unchanged values cannot newly violate uniqueness.
func Changed(before, after domain.HasUniqueFields) []domain.Field {
	prev := make(map[string]string)
	for _, f := range before.UniqueFields() {
		prev[f.Name] = f.Value
	}

	var out []domain.Field
	for _, f := range after.UniqueFields() {
		if v, ok := prev[f.Name]; !ok || v != f.Value {
			out = append(out, f)
		}
	}
	return out
}

// OwnerID adapts a getter returning a full record into a Lookup.
func OwnerID[T any](get func(context.Context, string) (T, error), id func(T) string) Lookup {
	return func(ctx context.Context, value string) (string, error) {
		rec, err := get(ctx, value)
		if err != nil {
			return "", err
		}
		return id(rec), nil
	}
}
