package flows

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/noteapp/internal/client/apitest"
	"github.com/dmitrijs2005/noteapp/internal/client/client"
	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/services"
	"github.com/stretchr/testify/require"
)

type memPending struct {
	email string
}

func (m *memPending) PendingEmail(context.Context) string { return m.email }
func (m *memPending) SetPendingEmail(_ context.Context, e string) error {
	m.email = e
	return nil
}
func (m *memPending) ClearPendingEmail(context.Context) error {
	m.email = ""
	return nil
}

type loginCall struct {
	token   string
	profile models.UserProfile
}

type recordingLogin struct {
	calls []loginCall
}

func (r *recordingLogin) Login(_ context.Context, token string, p models.UserProfile) {
	r.calls = append(r.calls, loginCall{token: token, profile: p})
}

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

type fakeTickers struct {
	mu   sync.Mutex
	list []*fakeTicker
}

func (ft *fakeTickers) New(time.Duration) Ticker {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	ft.list = append(ft.list, t)
	return t
}

func (ft *fakeTickers) Last() *fakeTicker {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.list[len(ft.list)-1]
}

func (ft *fakeTickers) Count() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.list)
}

// advance delivers n ticks; each send returns once the countdown received it.
func (ft *fakeTicker) advance(n int) {
	for i := 0; i < n; i++ {
		ft.ch <- time.Now()
	}
}

type env struct {
	srv     *apitest.Server
	auth    services.AuthService
	pending *memPending
	login   *recordingLogin
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := apitest.New(t)
	c, err := client.NewHTTPClient(srv.URL, nil)
	require.NoError(t, err)
	return &env{
		srv:     srv,
		auth:    services.NewAuthService(c),
		pending: &memPending{},
		login:   &recordingLogin{},
	}
}

const (
	requestRoute = "POST /auth/request-otp"
	verifyRoute  = "POST /auth/verify-otp"
)
