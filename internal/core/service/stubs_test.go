package service

import (
	"context"
	"sync"

	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
)

// In-memory port implementations shared by the service tests.

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	r.nextID++
	created.ID = "u" + string(rune('0'+r.nextID))
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) Search(_ context.Context, term string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

type stubRoleRepo struct {
	mu       sync.Mutex
	roles    map[string]struct{}
	bindings map[string][]string // userID → roles in assignment order
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{
		roles:    make(map[string]struct{}),
		bindings: make(map[string][]string),
	}
}

func (r *stubRoleRepo) RoleExists(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.roles[name]
	return ok, nil
}

func (r *stubRoleRepo) CreateRole(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[name] = struct{}{}
	return nil
}

func (r *stubRoleRepo) HasBinding(_ context.Context, userID, role string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bindings[userID] {
		if b == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRoleRepo) AddBinding(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bindings[userID] {
		if b == role {
			return nil
		}
	}
	r.bindings[userID] = append(r.bindings[userID], role)
	return nil
}

func (r *stubRoleRepo) RemoveBinding(_ context.Context, userID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.bindings[userID][:0]
	for _, b := range r.bindings[userID] {
		if b != role {
			kept = append(kept, b)
		}
	}
	r.bindings[userID] = kept
	return nil
}

func (r *stubRoleRepo) ListRoles(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.bindings[userID]))
	copy(out, r.bindings[userID])
	return out, nil
}

type stubLimiter struct {
	mu       sync.Mutex
	failures map[string]int
	limit    int
}

func newStubLimiter(limit int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), limit: limit}
}

func (l *stubLimiter) TooManyAttempts(_ context.Context, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[username] >= l.limit, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, username)
	return nil
}

type stubRecorder struct {
	mu     sync.Mutex
	events []ports.AuditEventInput
}

func (r *stubRecorder) Record(event ports.AuditEventInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type stubAuditRepo struct {
	mu     sync.Mutex
	events []*domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}
