package flows

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/noteapp/internal/client/apitest"
	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func newSignIn(t *testing.T, e *env) (*SignIn, *fakeTickers) {
	t.Helper()
	tickers := &fakeTickers{}
	f := NewSignIn(e.auth, e.pending, e.login, tickers.New, nil)
	t.Cleanup(f.Close)
	return f, tickers
}

func TestSignIn_MountRestoresPendingEmail(t *testing.T) {
	e := newEnv(t)
	e.pending.email = "resume@example.com"
	f, _ := newSignIn(t, e)

	f.Mount(context.Background())

	assert.Equal(t, "resume@example.com", f.Email())
	assert.Equal(t, CollectingIdentity, f.Phase())
}

func TestSignIn_MountWithoutPendingKeepsField(t *testing.T) {
	e := newEnv(t)
	f, _ := newSignIn(t, e)
	f.SetEmail("typed@example.com")

	f.Mount(context.Background())
	assert.Equal(t, "typed@example.com", f.Email())
}

func TestSignIn_RequestSendsEmailOnly(t *testing.T) {
	e := newEnv(t)
	f, _ := newSignIn(t, e)
	ctx := context.Background()

	f.SetEmail("not-an-email")
	assert.False(t, f.RequestOTP(ctx))
	assert.Equal(t, failure(MsgInvalidEmail), f.Message())
	assert.Zero(t, e.srv.Calls(requestRoute))

	f.SetEmail("jonas@example.com")
	require.True(t, f.RequestOTP(ctx))
	assert.Equal(t, AwaitingCode, f.Phase())
	assert.Equal(t, "jonas@example.com", e.pending.email)
	assert.False(t, f.SetEmail("other@example.com"))
}

func TestSignIn_ResendCooldown(t *testing.T) {
	e := newEnv(t)
	f, tickers := newSignIn(t, e)
	ctx := context.Background()

	assert.False(t, f.CanResend())

	f.SetEmail("jonas@example.com")
	require.True(t, f.RequestOTP(ctx))
	assert.False(t, f.CanResend())
	assert.Equal(t, 60, f.Remaining())
	require.Equal(t, 1, tickers.Count())

	// disabled resend never reaches the server
	assert.False(t, f.Resend(ctx))
	assert.Equal(t, 1, e.srv.Calls(requestRoute))

	tickers.Last().advance(59)
	require.Eventually(t, func() bool { return f.Remaining() == 1 }, waitFor, time.Millisecond)
	assert.False(t, f.CanResend())

	tickers.Last().advance(1)
	require.Eventually(t, f.CanResend, waitFor, time.Millisecond)
	assert.Zero(t, f.Remaining())

	require.True(t, f.Resend(ctx))
	assert.Equal(t, success(MsgOTPResent), f.Message())
	assert.Equal(t, AwaitingCode, f.Phase())
	assert.Equal(t, 60, f.Remaining())
	assert.Equal(t, 2, tickers.Count())
	assert.Equal(t, 2, e.srv.Calls(requestRoute))
}

func TestSignIn_ResendFailureKeepsState(t *testing.T) {
	e := newEnv(t)
	f, tickers := newSignIn(t, e)
	ctx := context.Background()

	f.SetEmail("jonas@example.com")
	require.True(t, f.RequestOTP(ctx))
	tickers.Last().advance(60)
	require.Eventually(t, f.CanResend, waitFor, time.Millisecond)

	e.srv.Fail(requestRoute, http.StatusServiceUnavailable, "")
	assert.False(t, f.Resend(ctx))
	assert.Equal(t, failure(MsgResendFailed), f.Message())
	assert.Equal(t, AwaitingCode, f.Phase())
	assert.True(t, f.CanResend())
}

func TestSignIn_MountCancelsCountdown(t *testing.T) {
	e := newEnv(t)
	f, tickers := newSignIn(t, e)
	ctx := context.Background()

	f.SetEmail("jonas@example.com")
	require.True(t, f.RequestOTP(ctx))
	first := tickers.Last()

	f.Mount(ctx)

	assert.Zero(t, f.Remaining())
	assert.Equal(t, CollectingIdentity, f.Phase())
	require.Eventually(t, first.stopped.Load, waitFor, time.Millisecond)
}

func TestSignIn_VerifyProfileFromServerUser(t *testing.T) {
	e := newEnv(t)
	e.srv.IncludeUser(true)
	f, tickers := newSignIn(t, e)
	ctx := context.Background()

	f.SetEmail("jonas@example.com")
	require.True(t, f.RequestOTP(ctx))
	f.SetCode(apitest.DefaultCode)
	require.True(t, f.Verify(ctx))

	require.Len(t, e.login.calls, 1)
	assert.Equal(t, models.UserProfile{Email: "jonas@example.com", UserID: "u-1"}, e.login.calls[0].profile)
	assert.Equal(t, success(MsgVerified), f.Message())
	assert.Empty(t, e.pending.email)
	assert.Zero(t, f.Remaining())
	require.Eventually(t, tickers.Last().stopped.Load, waitFor, time.Millisecond)
}

func TestSignIn_VerifyWithoutUserUsesEmail(t *testing.T) {
	e := newEnv(t)
	f, _ := newSignIn(t, e)
	ctx := context.Background()

	f.SetEmail("jonas@example.com")
	require.True(t, f.RequestOTP(ctx))
	f.SetCode(apitest.DefaultCode)
	require.True(t, f.Verify(ctx))

	require.Len(t, e.login.calls, 1)
	assert.Equal(t, models.UserProfile{Email: "jonas@example.com"}, e.login.calls[0].profile)
}

func TestSignIn_ResumedVerification(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first, _ := newSignIn(t, e)
	first.SetEmail("jonas@example.com")
	require.True(t, first.RequestOTP(ctx))
	first.Close()

	// a fresh flow picks up the pending address
	f, _ := newSignIn(t, e)
	f.Mount(ctx)
	require.Equal(t, "jonas@example.com", f.Email())
	require.True(t, f.RequestOTP(ctx))
	f.SetCode(apitest.DefaultCode)
	require.True(t, f.Verify(ctx))
	assert.Len(t, e.login.calls, 1)
}

func TestCountdown_StartZeroAndRestart(t *testing.T) {
	tickers := &fakeTickers{}
	c := NewCountdown(tickers.New)

	c.Start(0)
	assert.Zero(t, c.Remaining())
	assert.Zero(t, tickers.Count())

	c.Start(3)
	first := tickers.Last()
	c.Start(5)
	assert.Equal(t, 5, c.Remaining())
	require.Eventually(t, first.stopped.Load, waitFor, time.Millisecond)

	tickers.Last().advance(2)
	require.Eventually(t, func() bool { return c.Remaining() == 3 }, waitFor, time.Millisecond)

	c.Stop()
	assert.Zero(t, c.Remaining())
}
