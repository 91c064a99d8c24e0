package flows

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/noteapp/internal/client/client"
	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/services"
	"github.com/dmitrijs2005/noteapp/internal/common"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

type Phase int

const (
	CollectingIdentity Phase = iota
	AwaitingCode
)

func (p Phase) String() string {
	if p == AwaitingCode {
		return "awaiting-code"
	}
	return "collecting-identity"
}

// LoginHandler receives the token and profile of a successful verification.
type LoginHandler interface {
	Login(ctx context.Context, token string, profile models.UserProfile)
}

// PendingStore keeps the email awaiting verification across restarts.
type PendingStore interface {
	PendingEmail(ctx context.Context) string
	SetPendingEmail(ctx context.Context, email string) error
	ClearPendingEmail(ctx context.Context) error
}

// SanitizeCode drops every non-digit and keeps at most six digits.
func SanitizeCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == common.OTPLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// errorMessage picks the text shown for err: a validation message, the
// server's message, or fallback.
func errorMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, services.ErrInvalidCode):
		return MsgInvalidCode
	}
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// otpForm is the state both flows share: the code field, busy flags, the
// last message and the collaborators.
type otpForm struct {
	auth    services.AuthService
	pending PendingStore
	login   LoginHandler
	log     logging.Logger

	phase     Phase
	code      string
	loading   bool
	verifying bool
	msg       models.Message
}

func newOTPForm(auth services.AuthService, pending PendingStore, login LoginHandler, log logging.Logger) otpForm {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return otpForm{auth: auth, pending: pending, login: login, log: log}
}

func (f *otpForm) Phase() Phase            { return f.phase }
func (f *otpForm) Code() string            { return f.code }
func (f *otpForm) Loading() bool           { return f.loading }
func (f *otpForm) Verifying() bool         { return f.verifying }
func (f *otpForm) Message() models.Message { return f.msg }

// SetCode stores the sanitized code.
func (f *otpForm) SetCode(code string) { f.code = SanitizeCode(code) }

// request sends req and, on success, moves to AwaitingCode and remembers
// the email as pending.
func (f *otpForm) request(ctx context.Context, req models.OTPRequest) bool {
	f.msg = models.Message{}
	if !services.ValidEmail(req.Email) {
		f.msg = failure(MsgInvalidEmail)
		return false
	}

	f.loading = true
	defer func() { f.loading = false }()

	serverMsg, err := f.auth.RequestOTP(ctx, req)
	if err != nil {
		f.log.Info(ctx, "otp request failed", "error", err)
		f.msg = failure(errorMessage(err, MsgRequestFailed))
		return false
	}

	if serverMsg == "" {
		serverMsg = MsgOTPSent
	}
	f.msg = success(serverMsg)
	f.phase = AwaitingCode
	if err := f.pending.SetPendingEmail(ctx, req.Email); err != nil {
		f.log.Warn(ctx, "cannot persist pending email", "error", err)
	}
	return true
}

// verify redeems the code for the pending email (or entered, when none is
// pending). profile builds the session profile from the response.
func (f *otpForm) verify(ctx context.Context, entered string, profile func(context.Context, models.VerifyResponse) models.UserProfile) bool {
	f.msg = models.Message{}
	if !services.ValidCode(f.code) {
		f.msg = failure(MsgInvalidCode)
		return false
	}

	email := f.pending.PendingEmail(ctx)
	if email == "" {
		email = entered
	}

	f.verifying = true
	defer func() { f.verifying = false }()

	resp, err := f.auth.VerifyOTP(ctx, email, f.code)
	if err != nil {
		f.log.Info(ctx, "otp verification failed", "error", err)
		f.msg = failure(errorMessage(err, MsgVerifyFailed))
		return false
	}
	if resp.Token == "" {
		f.msg = failure(MsgNoToken)
		return false
	}

	f.login.Login(ctx, resp.Token, profile(ctx, resp))
	f.msg = success(MsgVerified)
	if err := f.pending.ClearPendingEmail(ctx); err != nil {
		f.log.Warn(ctx, "cannot clear pending email", "error", err)
	}
	return true
}
