package api

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sa-academy/cms-backend/internal/core/domain"
)

// memStore is an in-memory AccountRepository for end-to-end router tests.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]domain.Account
	seq      int
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]domain.Account)}
}

func (s *memStore) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email || existing.Username == a.Username {
			return nil, domain.ErrAccountExists
		}
	}
	s.seq++
	stored := *a
	stored.ID = fmt.Sprintf("%024d", s.seq)
	s.accounts[stored.ID] = stored
	return &stored, nil
}

func (s *memStore) find(match func(domain.Account) bool) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if match(a) {
			found := a
			return &found, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *memStore) FindByID(_ context.Context, id string) (*domain.Account, error) {
	return s.find(func(a domain.Account) bool { return a.ID == id })
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	return s.find(func(a domain.Account) bool { return strings.EqualFold(a.Email, email) })
}

func (s *memStore) FindByResetToken(_ context.Context, hash string) (*domain.Account, error) {
	return s.find(func(a domain.Account) bool { return hash != "" && a.ResetTokenHash == hash })
}

func (s *memStore) List(_ context.Context) ([]*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		a := a
		out = append(out, &a)
	}
	return out, nil
}

func (s *memStore) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Role = role
	s.accounts[id] = a
	return &a, nil
}

func (s *memStore) DeleteUnprotected(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.Role == domain.RoleSuperAdmin {
		return domain.ErrAccountNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *memStore) SetResetToken(_ context.Context, id, hash string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.ResetTokenHash, a.ResetTokenExpiry = hash, &expiry
	s.accounts[id] = a
	return nil
}

func (s *memStore) ClearResetToken(_ context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if ok && a.ResetTokenHash == hash {
		a.ResetTokenHash, a.ResetTokenExpiry = "", nil
		s.accounts[id] = a
	}
	return nil
}

func (s *memStore) ConsumeResetToken(_ context.Context, hash string, now time.Time, passwordHash string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.accounts {
		if hash != "" && a.ResetTokenHash == hash && a.ResetTokenExpiry != nil && a.ResetTokenExpiry.After(now) {
			a.PasswordHash = passwordHash
			a.ResetTokenHash, a.ResetTokenExpiry = "", nil
			s.accounts[id] = a
			return &a, nil
		}
	}
	return nil, domain.ErrResetInvalidOrExpired
}

type memMailer struct {
	mu     sync.Mutex
	bodies map[string][]string
}

func (m *memMailer) Send(_ context.Context, to, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bodies == nil {
		m.bodies = make(map[string][]string)
	}
	m.bodies[to] = append(m.bodies[to], body)
	return nil
}

func (m *memMailer) lastTo(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bodies[to]
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1]
}
