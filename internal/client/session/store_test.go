package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/dmitrijs2005/noteapp/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	data map[string][]byte
	ttl  map[string]time.Duration
	err  error
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	m.ttl[key] = ttl
	return nil
}

func (m *memRepo) SetAll(ctx context.Context, values map[string][]byte, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	for k, v := range values {
		m.data[k] = v
		m.ttl[k] = ttl
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, keys ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

var profile = models.UserProfile{Name: "Jonas Kharmadi", Email: "jonas@example.com", DateOfBirth: "11 December 1927", UserID: "u-42"}

func TestStore_SaveLoad(t *testing.T) {
	repo := newMemRepo()
	s := NewStore(repo, nil, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok-1", profile))

	assert.Equal(t, common.SessionRetention, repo.ttl[common.AuthTokenKey])
	assert.Equal(t, common.SessionRetention, repo.ttl[common.UserDataKey])

	sess, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, models.Session{Token: "tok-1", User: profile}, sess)

	tok, ok := s.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := NewStore(newMemRepo(), nil, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "old", profile))
	require.NoError(t, s.Save(ctx, "new", models.UserProfile{Email: "x@y.io"}))

	sess, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "new", sess.Token)
	assert.Equal(t, "x@y.io", sess.User.Email)
}

func TestStore_LoadAbsent(t *testing.T) {
	s := NewStore(newMemRepo(), nil, nil)

	_, ok := s.Load(context.Background())
	assert.False(t, ok)
	_, ok = s.Token(context.Background())
	assert.False(t, ok)
}

func TestStore_LoadCorruptProfile(t *testing.T) {
	repo := newMemRepo()
	repo.data[common.AuthTokenKey] = []byte("tok")
	repo.data[common.UserDataKey] = []byte("{not json")
	s := NewStore(repo, nil, nil)

	sess, ok := s.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, models.UserProfile{}, sess.User)
}

func TestStore_StorageUnavailableMeansAbsent(t *testing.T) {
	repo := newMemRepo()
	s := NewStore(repo, nil, nil)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "tok", profile))
	require.NoError(t, s.SetPendingEmail(ctx, "a@b.co"))

	repo.err = errors.New("disk gone")

	_, ok := s.Load(ctx)
	assert.False(t, ok)
	_, ok = s.Token(ctx)
	assert.False(t, ok)
	assert.Empty(t, s.PendingEmail(ctx))
	assert.Error(t, s.Save(ctx, "tok", profile))
	assert.Error(t, s.Clear(ctx))
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	repo := newMemRepo()
	repo.data["unrelated"] = []byte("stay")
	s := NewStore(repo, nil, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok", profile))
	require.NoError(t, s.SetPendingEmail(ctx, "a@b.co"))
	require.NoError(t, s.Clear(ctx))

	_, ok := s.Load(ctx)
	assert.False(t, ok)
	assert.Empty(t, s.PendingEmail(ctx))
	assert.Equal(t, []byte("stay"), repo.data["unrelated"])
}

func TestStore_PendingEmail(t *testing.T) {
	repo := newMemRepo()
	s := NewStore(repo, nil, nil)
	ctx := context.Background()

	assert.Empty(t, s.PendingEmail(ctx))
	require.NoError(t, s.SetPendingEmail(ctx, "jonas@example.com"))
	assert.Equal(t, time.Duration(0), repo.ttl[common.PendingEmailKey])
	assert.Equal(t, "jonas@example.com", s.PendingEmail(ctx))

	require.NoError(t, s.ClearPendingEmail(ctx))
	assert.Empty(t, s.PendingEmail(ctx))
}

func TestStore_SealedAtRest(t *testing.T) {
	sealer, err := cryptox.NewSealer(common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)

	repo := newMemRepo()
	s := NewStore(repo, sealer, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "secret-token", profile))
	assert.NotContains(t, string(repo.data[common.AuthTokenKey]), "secret-token")

	sess, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "secret-token", sess.Token)
	assert.Equal(t, profile, sess.User)

	// a store opened with a different key cannot read the session
	otherSealer, err := cryptox.NewSealer(common.GenerateRandByteArray(cryptox.KeySize))
	require.NoError(t, err)
	_, ok = NewStore(repo, otherSealer, nil).Load(ctx)
	assert.False(t, ok)
}

func TestStore_SurvivesRestartOnSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "noteapp.db")

	db, err := kv.OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, NewStore(kv.NewSQLiteRepository(db), nil, nil).Save(ctx, "tok", profile))
	require.NoError(t, db.Close())

	db, err = kv.OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	sess, ok := NewStore(kv.NewSQLiteRepository(db), nil, nil).Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, profile, sess.User)
}
