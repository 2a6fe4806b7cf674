package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

var errBoom = errors.New("boom")

type stubUserRepo struct {
	byID  map[int64]*domain.User
	err   error
	users []domain.User
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[int64]*domain.User), users: users}
	for i := range users {
		u := users[i]
		r.byID[u.ID] = &u
	}
	return r
}

func (r *stubUserRepo) FindByDirectoryUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.DirectoryUsername == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ListActiveWithBirthDate(context.Context) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.users, nil
}

func (r *stubUserRepo) List(_ context.Context, limit int) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.users) {
		return r.users[:limit], nil
	}
	return r.users, nil
}

type stubRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (s *stubRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = until
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

type stubAudit struct {
	attempts []domain.LoginAttempt
	err      error
}

func (a *stubAudit) RecordLogin(_ context.Context, attempt domain.LoginAttempt) error {
	a.attempts = append(a.attempts, attempt)
	return a.err
}

type stubResolver struct {
	user *domain.User
	err  error
}

func (r stubResolver) Resolve(context.Context, string, string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := *r.user
	return &clone, nil
}

type stubCarouselRepo struct {
	slides []domain.Slide
	err    error
}

func (r *stubCarouselRepo) ListActive(context.Context) ([]domain.Slide, error) {
	return r.slides, r.err
}

func (r *stubCarouselRepo) Create(_ context.Context, slide *domain.Slide) error {
	if r.err != nil {
		return r.err
	}
	slide.ID = int64(len(r.slides) + 1)
	r.slides = append(r.slides, *slide)
	return nil
}

type stubImageStore struct {
	saved   []string
	deleted []string
	err     error
}

func (s *stubImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.saved = append(s.saved, filename)
	return "/uploads/" + filename, nil
}

func (s *stubImageStore) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

type stubDirectoryRepo struct {
	mu       sync.Mutex
	roles    map[string]int64
	areas    map[string]int64
	accounts map[string]ports.DirectoryAccount
	failUser string
}

func newStubDirectoryRepo() *stubDirectoryRepo {
	return &stubDirectoryRepo{
		roles:    make(map[string]int64),
		areas:    make(map[string]int64),
		accounts: make(map[string]ports.DirectoryAccount),
	}
}

func (r *stubDirectoryRepo) UpsertRole(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.roles[name]; ok {
		return id, nil
	}
	r.roles[name] = int64(len(r.roles) + 1)
	return r.roles[name], nil
}

func (r *stubDirectoryRepo) UpsertArea(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.areas[name]; ok {
		return id, nil
	}
	r.areas[name] = int64(len(r.areas) + 1)
	return r.areas[name], nil
}

func (r *stubDirectoryRepo) UpsertUser(_ context.Context, acct ports.DirectoryAccount) error {
	if acct.Username == r.failUser {
		return errBoom
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acct.Username] = acct
	return nil
}
