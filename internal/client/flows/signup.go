package flows

import (
	"context"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/services"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

// Signup registers a new identity: name, date of birth and email are sent
// with the code request, and the session profile is taken from the token
// claims with the typed identity as fallback.
type Signup struct {
	otpForm

	name  string
	dob   string
	email string
}

func NewSignup(auth services.AuthService, pending PendingStore, login LoginHandler, log logging.Logger) *Signup {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Signup{otpForm: newOTPForm(auth, pending, login, log.With("flow", "signup"))}
}

func (f *Signup) Name() string        { return f.name }
func (f *Signup) DateOfBirth() string { return f.dob }
func (f *Signup) Email() string       { return f.email }

// Reset returns the flow to an empty CollectingIdentity form.
func (f *Signup) Reset() {
	f.phase = CollectingIdentity
	f.name, f.dob, f.email, f.code = "", "", "", ""
	f.msg = models.Message{}
}

// SetIdentity fills the identity fields. It is ignored once a code has been
// requested.
func (f *Signup) SetIdentity(name, dob, email string) bool {
	if f.phase != CollectingIdentity || f.loading {
		return false
	}
	f.name, f.dob, f.email = name, dob, email
	return true
}

// RequestOTP asks the server to email a code to the entered address.
func (f *Signup) RequestOTP(ctx context.Context) bool {
	return f.request(ctx, models.OTPRequest{Email: f.email, Name: f.name, DateOfBirth: f.dob})
}

// Verify redeems the entered code. On success the login handler has been
// called exactly once.
func (f *Signup) Verify(ctx context.Context) bool {
	return f.verify(ctx, f.email, f.profile)
}

func (f *Signup) profile(ctx context.Context, resp models.VerifyResponse) models.UserProfile {
	p := models.UserProfile{Name: f.name, Email: f.email, DateOfBirth: f.dob}

	hints, err := services.DecodeClaims(resp.Token)
	if err != nil {
		f.log.Warn(ctx, "token claims unreadable, using entered identity", "error", err)
	} else {
		p = p.Overlay(hints)
	}

	if resp.User != nil {
		p = p.Overlay(*resp.User)
	}
	return p
}
