package app_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// --- Mocks ---

// memStore is an in-memory table keyed by id. Lookups by a secondary key scan it.
type memStore[T any] struct {
	mu       sync.Mutex
	rows     map[string]T
	order    []string
	id       func(T) string
	notFound error
}

func newMemStore[T any](id func(T) string, notFound error) *memStore[T] {
	return &memStore[T]{rows: make(map[string]T), id: id, notFound: notFound}
}

func (m *memStore[T]) put(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id(v)
	if _, ok := m.rows[id]; !ok {
		m.order = append(m.order, id)
	}
	m.rows[id] = v
}

func (m *memStore[T]) get(id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.rows[id]
	if !ok {
		var zero T
		return zero, m.notFound
	}
	return v, nil
}

func (m *memStore[T]) find(match func(T) bool) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		if v := m.rows[id]; match(v) {
			return v, nil
		}
	}
	var zero T
	return zero, m.notFound
}

func (m *memStore[T]) all(match func(T) bool) domain.ListResult[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []T
	for _, id := range m.order {
		if v := m.rows[id]; match == nil || match(v) {
			out = append(out, v)
		}
	}
	return domain.ListResult[T]{Items: out, Total: len(out)}
}

func (m *memStore[T]) remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return m.notFound
	}
	delete(m.rows, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

type mockPageRepo struct {
	*memStore[domain.Page]
	deletes int
}

func newMockPageRepo() *mockPageRepo {
	return &mockPageRepo{memStore: newMemStore(func(p domain.Page) string { return p.ID }, domain.ErrPageNotFound)}
}

func (m *mockPageRepo) Create(_ context.Context, p domain.Page) error { m.put(p); return nil }
func (m *mockPageRepo) GetByID(_ context.Context, id string) (domain.Page, error) {
	return m.get(id)
}
func (m *mockPageRepo) GetBySlug(_ context.Context, slug string) (domain.Page, error) {
	return m.find(func(p domain.Page) bool { return p.Slug == slug })
}
func (m *mockPageRepo) GetByPageKey(_ context.Context, key string) (domain.Page, error) {
	return m.find(func(p domain.Page) bool { return p.PageKey == key })
}
func (m *mockPageRepo) List(_ context.Context, f domain.PageFilter) (domain.ListResult[domain.Page], error) {
	return m.all(func(p domain.Page) bool { return f.Status == nil || p.Status == *f.Status }), nil
}
func (m *mockPageRepo) Update(_ context.Context, p domain.Page, expectedVersion int) error {
	stored, err := m.get(p.ID)
	if err != nil {
		return err
	}
	if stored.Version != expectedVersion {
		return &domain.ConflictError{Entity: "page", Field: "version"}
	}
	m.put(p)
	return nil
}
func (m *mockPageRepo) Delete(_ context.Context, id string) error {
	m.deletes++
	return m.remove(id)
}

type mockLegalRepo struct {
	*memStore[domain.LegalPage]
	txCount int
}

func newMockLegalRepo() *mockLegalRepo {
	return &mockLegalRepo{memStore: newMemStore(func(l domain.LegalPage) string { return l.ID }, domain.ErrLegalPageNotFound)}
}

func (m *mockLegalRepo) Create(_ context.Context, l domain.LegalPage) error { m.put(l); return nil }
func (m *mockLegalRepo) GetByID(_ context.Context, id string) (domain.LegalPage, error) {
	return m.get(id)
}
func (m *mockLegalRepo) GetCurrent(_ context.Context, pageType string) (domain.LegalPage, error) {
	return m.find(func(l domain.LegalPage) bool { return l.PageType == pageType && l.IsCurrent })
}
func (m *mockLegalRepo) List(_ context.Context, f domain.LegalPageFilter) (domain.ListResult[domain.LegalPage], error) {
	return m.all(func(l domain.LegalPage) bool {
		return (f.PageType == "" || l.PageType == f.PageType) && (f.IsCurrent == nil || l.IsCurrent == *f.IsCurrent)
	}), nil
}
func (m *mockLegalRepo) Update(_ context.Context, l domain.LegalPage) error {
	if _, err := m.get(l.ID); err != nil {
		return err
	}
	m.put(l)
	return nil
}
func (m *mockLegalRepo) Delete(_ context.Context, id string) error { return m.remove(id) }
func (m *mockLegalRepo) DemoteCurrent(_ context.Context, pageType, exceptID string) (int64, error) {
	var n int64
	for _, l := range m.all(nil).Items {
		if l.PageType == pageType && l.IsCurrent && l.ID != exceptID {
			l.IsCurrent = false
			m.put(l)
			n++
		}
	}
	return n, nil
}
func (m *mockLegalRepo) WithinTx(_ context.Context, fn func(domain.LegalPageRepository) error) error {
	m.txCount++
	return fn(m)
}

type mockBusinessModelRepo struct {
	*memStore[domain.BusinessModel]
}

func newMockBusinessModelRepo() *mockBusinessModelRepo {
	return &mockBusinessModelRepo{memStore: newMemStore(func(b domain.BusinessModel) string { return b.ID }, domain.ErrBusinessModelNotFound)}
}

func (m *mockBusinessModelRepo) Create(_ context.Context, b domain.BusinessModel) error {
	m.put(b)
	return nil
}
func (m *mockBusinessModelRepo) GetByID(_ context.Context, id string) (domain.BusinessModel, error) {
	return m.get(id)
}
func (m *mockBusinessModelRepo) GetByInternalCode(_ context.Context, code string) (domain.BusinessModel, error) {
	return m.find(func(b domain.BusinessModel) bool { return b.InternalCode == code })
}
func (m *mockBusinessModelRepo) GetBySlug(_ context.Context, slug string) (domain.BusinessModel, error) {
	return m.find(func(b domain.BusinessModel) bool { return b.Slug == slug })
}
func (m *mockBusinessModelRepo) List(_ context.Context, f domain.BusinessModelFilter) (domain.ListResult[domain.BusinessModel], error) {
	return m.all(func(b domain.BusinessModel) bool {
		return (f.IsActive == nil || b.IsActive == *f.IsActive) && (f.ShowOnWeb == nil || b.ShowOnWeb == *f.ShowOnWeb)
	}), nil
}
func (m *mockBusinessModelRepo) Update(_ context.Context, b domain.BusinessModel) error {
	m.put(b)
	return nil
}
func (m *mockBusinessModelRepo) Delete(_ context.Context, id string) error { return m.remove(id) }

type mockSpecialtyRepo struct {
	*memStore[domain.Specialty]
	usage map[string]domain.SpecialtyUsage
}

func newMockSpecialtyRepo() *mockSpecialtyRepo {
	return &mockSpecialtyRepo{
		memStore: newMemStore(func(s domain.Specialty) string { return s.ID }, domain.ErrSpecialtyNotFound),
		usage:    make(map[string]domain.SpecialtyUsage),
	}
}

func (m *mockSpecialtyRepo) Create(_ context.Context, s domain.Specialty) error { m.put(s); return nil }
func (m *mockSpecialtyRepo) GetByID(_ context.Context, id string) (domain.Specialty, error) {
	return m.get(id)
}
func (m *mockSpecialtyRepo) GetBySlug(_ context.Context, slug string) (domain.Specialty, error) {
	return m.find(func(s domain.Specialty) bool { return s.Slug == slug })
}
func (m *mockSpecialtyRepo) List(_ context.Context, _ domain.SpecialtyFilter) (domain.ListResult[domain.Specialty], error) {
	return m.all(nil), nil
}
func (m *mockSpecialtyRepo) Update(_ context.Context, s domain.Specialty) error { m.put(s); return nil }
func (m *mockSpecialtyRepo) Delete(_ context.Context, id string) error { return m.remove(id) }
func (m *mockSpecialtyRepo) Usage(_ context.Context, id string) (domain.SpecialtyUsage, error) {
	return m.usage[id], nil
}

type mockProgramRepo struct {
	*memStore[domain.Program]
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{memStore: newMemStore(func(p domain.Program) string { return p.ID }, domain.ErrProgramNotFound)}
}

func (m *mockProgramRepo) Create(_ context.Context, p domain.Program) error { m.put(p); return nil }
func (m *mockProgramRepo) GetByID(_ context.Context, id string) (domain.Program, error) {
	return m.get(id)
}
func (m *mockProgramRepo) GetBySlug(_ context.Context, slug string) (domain.Program, error) {
	return m.find(func(p domain.Program) bool { return p.Slug == slug })
}
func (m *mockProgramRepo) List(_ context.Context, _ domain.ProgramFilter) (domain.ListResult[domain.Program], error) {
	return m.all(nil), nil
}
func (m *mockProgramRepo) Update(_ context.Context, p domain.Program) error { m.put(p); return nil }
func (m *mockProgramRepo) Delete(_ context.Context, id string) error { return m.remove(id) }

type mockInstructorRepo struct {
	*memStore[domain.Instructor]
}

func newMockInstructorRepo() *mockInstructorRepo {
	return &mockInstructorRepo{memStore: newMemStore(func(i domain.Instructor) string { return i.ID }, domain.ErrInstructorNotFound)}
}

func (m *mockInstructorRepo) Create(_ context.Context, i domain.Instructor) error { m.put(i); return nil }
func (m *mockInstructorRepo) GetByID(_ context.Context, id string) (domain.Instructor, error) {
	return m.get(id)
}
func (m *mockInstructorRepo) GetBySlug(_ context.Context, slug string) (domain.Instructor, error) {
	return m.find(func(i domain.Instructor) bool { return i.Slug == slug })
}
func (m *mockInstructorRepo) List(_ context.Context, _ domain.InstructorFilter) (domain.ListResult[domain.Instructor], error) {
	return m.all(nil), nil
}
func (m *mockInstructorRepo) Update(_ context.Context, i domain.Instructor) error { m.put(i); return nil }
func (m *mockInstructorRepo) Delete(_ context.Context, id string) error { return m.remove(id) }

type mockLeadRepo struct {
	*memStore[domain.Lead]
}

func newMockLeadRepo() *mockLeadRepo {
	return &mockLeadRepo{memStore: newMemStore(func(l domain.Lead) string { return l.ID }, domain.ErrLeadNotFound)}
}

func (m *mockLeadRepo) Create(_ context.Context, l domain.Lead) error { m.put(l); return nil }
func (m *mockLeadRepo) GetByID(_ context.Context, id string) (domain.Lead, error) {
	return m.get(id)
}
func (m *mockLeadRepo) List(_ context.Context, f domain.LeadFilter) (domain.ListResult[domain.Lead], error) {
	return m.all(func(l domain.Lead) bool { return f.LeadStatus == nil || l.LeadStatus == *f.LeadStatus }), nil
}
func (m *mockLeadRepo) Update(_ context.Context, l domain.Lead) error { m.put(l); return nil }
func (m *mockLeadRepo) Delete(_ context.Context, id string) error { return m.remove(id) }

type mockPublisher struct {
	mu      sync.Mutex
	changes []domain.Change
	err     error
}

func (m *mockPublisher) Publish(_ context.Context, c domain.Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changes = append(m.changes, c)
	return m.err
}

func (m *mockPublisher) last() domain.Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.changes) == 0 {
		return domain.Change{}
	}
	return m.changes[len(m.changes)-1]
}

var errPublish = errors.New("broker unavailable")

func ptr[T any](v T) *T { return &v }
