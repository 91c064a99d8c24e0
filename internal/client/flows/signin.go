package flows

import (
	"context"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/services"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

// SignIn is the direct sign-in entry point. It only asks for an email,
// resumes a pending verification on mount and supports resending the code.
type SignIn struct {
	otpForm

	email     string
	countdown *Countdown
}

// NewSignIn builds the flow. newTicker may be nil for a real one second
// ticker.
func NewSignIn(auth services.AuthService, pending PendingStore, login LoginHandler, newTicker TickerFunc, log logging.Logger) *SignIn {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SignIn{
		otpForm:   newOTPForm(auth, pending, login, log.With("flow", "signin")),
		countdown: NewCountdown(newTicker),
	}
}

// Mount resets the flow and restores a pending email into the email field.
func (f *SignIn) Mount(ctx context.Context) {
	f.countdown.Stop()
	f.phase = CollectingIdentity
	f.code = ""
	f.msg = models.Message{}
	if email := f.pending.PendingEmail(ctx); email != "" {
		f.email = email
	}
}

// Close stops the countdown. The flow may be mounted again afterwards.
func (f *SignIn) Close() {
	f.countdown.Stop()
}

func (f *SignIn) Email() string { return f.email }

// SetEmail is ignored while a request is in flight or a code is awaited.
func (f *SignIn) SetEmail(email string) bool {
	if f.phase != CollectingIdentity || f.loading {
		return false
	}
	f.email = email
	return true
}

// Remaining is the number of seconds until Resend is allowed.
func (f *SignIn) Remaining() int { return f.countdown.Remaining() }

// CanResend reports whether the resend control is enabled.
func (f *SignIn) CanResend() bool {
	return f.phase == AwaitingCode && !f.loading && f.countdown.Remaining() == 0
}

func (f *SignIn) RequestOTP(ctx context.Context) bool {
	if !f.request(ctx, models.OTPRequest{Email: f.email}) {
		return false
	}
	f.countdown.Start(common.ResendCooldownSeconds)
	return true
}

// Resend requests a fresh code and restarts the cooldown. It does nothing
// while CanResend is false.
func (f *SignIn) Resend(ctx context.Context) bool {
	if !f.CanResend() {
		return false
	}

	f.msg = models.Message{}
	f.loading = true
	defer func() { f.loading = false }()

	if _, err := f.auth.RequestOTP(ctx, models.OTPRequest{Email: f.email}); err != nil {
		f.log.Info(ctx, "otp resend failed", "error", err)
		f.msg = failure(errorMessage(err, MsgResendFailed))
		return false
	}

	f.msg = success(MsgOTPResent)
	f.countdown.Start(common.ResendCooldownSeconds)
	return true
}

func (f *SignIn) Verify(ctx context.Context) bool {
	ok := f.verify(ctx, f.email, func(_ context.Context, resp models.VerifyResponse) models.UserProfile {
		p := models.UserProfile{Email: f.email}
		if resp.User != nil {
			p = p.Overlay(*resp.User)
		}
		return p
	})
	if ok {
		f.countdown.Stop()
	}
	return ok
}
