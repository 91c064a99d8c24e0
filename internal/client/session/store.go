// Package session persists the authentication token, the user profile and
// the pending verification email in durable storage.
//
// Storage failures never surface as errors from the read side: an
// unreadable store is reported as "no session" and logged, so the UI falls
// back to the entry flow instead of crashing.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

// Sealer encrypts values at rest. *cryptox.Sealer satisfies it.
type Sealer interface {
	Seal(plaintext []byte) []byte
	Open(sealed []byte) ([]byte, error)
}

type Store struct {
	repo   kv.Repository
	sealer Sealer
	log    logging.Logger
}

// NewStore builds a Store over repo. sealer may be nil, in which case values
// are stored as is.
func NewStore(repo kv.Repository, sealer Sealer, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{repo: repo, sealer: sealer, log: log.With("component", "session")}
}

func (s *Store) seal(v []byte) []byte {
	if s.sealer == nil {
		return v
	}
	return s.sealer.Seal(v)
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "storage unavailable, treating as absent", "key", key, "error", err)
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	if s.sealer == nil {
		return v, true
	}
	plain, err := s.sealer.Open(v)
	if err != nil {
		s.log.Warn(ctx, "stored value cannot be opened, treating as absent", "key", key, "error", err)
		return nil, false
	}
	return plain, true
}

// Save stores token and profile for common.SessionRetention. Both records
// are written together; the last call wins.
func (s *Store) Save(ctx context.Context, token string, profile models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	err = s.repo.SetAll(ctx, map[string][]byte{
		common.AuthTokenKey: s.seal([]byte(token)),
		common.UserDataKey:  s.seal(data),
	}, common.SessionRetention)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored session. ok is false when no token is stored, it
// has expired, or storage cannot be read. A missing or corrupt profile
// yields a session with an empty profile.
func (s *Store) Load(ctx context.Context) (sess models.Session, ok bool) {
	token, ok := s.get(ctx, common.AuthTokenKey)
	if !ok || len(token) == 0 {
		return models.Session{}, false
	}
	sess.Token = string(token)

	if data, ok := s.get(ctx, common.UserDataKey); ok {
		if err := json.Unmarshal(data, &sess.User); err != nil {
			s.log.Warn(ctx, "stored profile is corrupt", "error", err)
			sess.User = models.UserProfile{}
		}
	}
	return sess, true
}

// Token returns the stored bearer token.
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok := s.get(ctx, common.AuthTokenKey)
	if !ok || len(token) == 0 {
		return "", false
	}
	return string(token), true
}

// Clear removes token, profile and pending email in one step.
func (s *Store) Clear(ctx context.Context) error {
	err := s.repo.Delete(ctx, common.AuthTokenKey, common.UserDataKey, common.PendingEmailKey)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// PendingEmail returns the email awaiting verification, or "".
func (s *Store) PendingEmail(ctx context.Context) string {
	v, ok := s.get(ctx, common.PendingEmailKey)
	if !ok {
		return ""
	}
	return string(v)
}

// SetPendingEmail stores email without expiry.
func (s *Store) SetPendingEmail(ctx context.Context, email string) error {
	if err := s.repo.Set(ctx, common.PendingEmailKey, s.seal([]byte(email)), 0); err != nil {
		return fmt.Errorf("save pending email: %w", err)
	}
	return nil
}

func (s *Store) ClearPendingEmail(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.PendingEmailKey); err != nil {
		return fmt.Errorf("clear pending email: %w", err)
	}
	return nil
}
