package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/dbx"
	"github.com/dmitrijs2005/docusage/internal/server/auth"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	filesrepo "github.com/dmitrijs2005/docusage/internal/server/repositories/files"
	usersrepo "github.com/dmitrijs2005/docusage/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	nextID  int64

	findErr   error
	createErr error
	creates   int
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*models.User{}, nextID: 100}
}

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	stored := *u
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.byEmail[u.Email] = &stored
	out := stored
	return &out, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUsers) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) remove(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, email)
}

// --- files ---

type memFiles struct {
	mu      sync.Mutex
	rows    map[string]*models.File // by storage key
	saveErr error
	listErr error
	getErr  error
}

func newMemFiles() *memFiles { return &memFiles{rows: map[string]*models.File{}} }

func (r *memFiles) Save(_ context.Context, f *models.File) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if old, ok := r.rows[f.StorageKey]; ok {
		f.ID = old.ID
	}
	f.CreatedAt = time.Now()
	row := *f
	r.rows[f.StorageKey] = &row
	return f, nil
}

func (r *memFiles) ListByUser(_ context.Context, userID int64) ([]*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.File
	for _, f := range r.rows {
		if f.UserID == userID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

func (r *memFiles) GetByID(_ context.Context, userID int64, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, f := range r.rows {
		if f.ID == id && f.UserID == userID {
			c := *f
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- repository manager ---

type fakeRepoManager struct {
	users *memUsers
	files *memFiles
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Files(dbx.DBTX) filesrepo.Repository          { return m.files }

// --- blob store ---

type memStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	putErr  error
	getErr  error
	deleted []string
}

func newMemStore() *memStore { return &memStore{blobs: map[string][]byte{}} }

func (s *memStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = b
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return io.NopCloser(strings.NewReader(string(b))), nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	delete(s.blobs, key)
	return nil
}

// --- auth primitives ---

type spyHasher struct {
	*auth.Argon2Hasher
	hashErr error
	checks  atomic.Int32
}

func newSpyHasher() *spyHasher {
	return &spyHasher{Argon2Hasher: auth.NewArgon2Hasher(auth.HasherParams{Time: 1, Memory: 1024, Threads: 1})}
}

func (h *spyHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.Argon2Hasher.Hash(password)
}

func (h *spyHasher) Check(password, encoded string) error {
	h.checks.Add(1)
	return h.Argon2Hasher.Check(password, encoded)
}

type failingCodec struct{ *auth.TokenManager }

func (failingCodec) Issue(auth.Claims) (string, error) { return "", errors.New("signer offline") }

func newTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		DefaultTTL: time.Hour,
	})
	require.NoError(t, err)
	return m
}

func userWithHash(email, hash string) *models.User {
	return &models.User{Email: email, PasswordHash: hash}
}
