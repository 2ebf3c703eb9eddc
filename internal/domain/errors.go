package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is the root of every not-found condition. Family sentinels wrap it,
// so callers can match either the family or the general case.
var ErrNotFound = errors.New("not found")

// Sentinel errors for simple conditions without extra context.
var (
	ErrPageNotFound          = fmt.Errorf("page %w", ErrNotFound)
	ErrLegalPageNotFound     = fmt.Errorf("legal page %w", ErrNotFound)
	ErrBusinessModelNotFound = fmt.Errorf("business model %w", ErrNotFound)
	ErrSpecialtyNotFound     = fmt.Errorf("specialty %w", ErrNotFound)
	ErrProgramNotFound       = fmt.Errorf("program %w", ErrNotFound)
	ErrInstructorNotFound    = fmt.Errorf("instructor %w", ErrNotFound)
	ErrLeadNotFound          = fmt.Errorf("lead %w", ErrNotFound)
)

// ConflictError is returned when a unique value is already owned by another record,
// or when an optimistic version check loses a race.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	if e.Field == "version" {
		return fmt.Sprintf("%s was modified concurrently (expected version %s)", e.Entity, e.Value)
	}
	return fmt.Sprintf("%s %s %q is already in use", e.Entity, e.Field, e.Value)
}

// ProtectedError is returned when deletion targets a record on a protected allow-list.
type ProtectedError struct {
	Entity      string
	Field       string
	Value       string
	Alternative string
}

func (e *ProtectedError) Error() string {
	return fmt.Sprintf("%s with %s %q is protected and cannot be deleted; set %s instead",
		e.Entity, e.Field, e.Value, e.Alternative)
}

// ReferentialError is returned when deletion is blocked by live references held by
// other entity families. References maps the referring family to its count.
type ReferentialError struct {
	Entity     string
	ID         string
	References map[string]int
}

func (e *ReferentialError) Error() string {
	keys := make([]string, 0, len(e.References))
	for k := range e.References {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d %s", e.References[k], k))
	}
	return fmt.Sprintf("%s %q is still referenced by %s; unassign it first",
		e.Entity, e.ID, strings.Join(parts, ", "))
}

// ValidationError wraps malformed input detected before any guard runs.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransitionError is returned when a status change is not defined by the state machine.
type TransitionError struct {
	Event   string
	Current string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}

// StoreError wraps a backing-store failure without reinterpreting it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
