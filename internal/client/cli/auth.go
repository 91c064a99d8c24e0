package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/noteapp/internal/client/flows"
	"github.com/dmitrijs2005/noteapp/internal/client/shell"
)

// Signup collects name, date of birth and email, requests a code and
// prompts for it.
func (a *App) Signup(ctx context.Context) error {
	a.signup.Reset()

	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	dob, err := GetSimpleText(a.reader, "Enter your date of birth", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}

	a.signup.SetIdentity(name, dob, email)
	ok := a.signup.RequestOTP(ctx)
	a.printMessage(a.signup.Message())
	if !ok {
		return nil
	}
	return a.Code(ctx)
}

// Email asks for the sign-in address, offering the pending one as default,
// and requests a code for it.
func (a *App) Email(ctx context.Context) error {
	if a.signin.Phase() == flows.AwaitingCode {
		fmt.Fprintf(a.out, "A code was sent to %s. Use 'code' or 'resend'.\n", a.signin.Email())
		return nil
	}

	prompt := "Enter your email"
	if current := a.signin.Email(); current != "" {
		prompt = fmt.Sprintf("Enter your email [%s]", current)
	}
	email, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email != "" {
		a.signin.SetEmail(email)
	}

	ok := a.signin.RequestOTP(ctx)
	a.printMessage(a.signin.Message())
	if !ok {
		return nil
	}
	return a.Code(ctx)
}

// Code reads a verification code for the flow of the current route.
func (a *App) Code(ctx context.Context) error {
	type codeForm interface {
		Phase() flows.Phase
		SetCode(code string)
	}

	var (
		form   codeForm
		verify func(context.Context) bool
		hint   string
	)
	switch a.route() {
	case shell.RouteSignup:
		form, verify, hint = a.signup, a.signup.Verify, "signup"
	case shell.RouteVerify:
		form, verify, hint = a.signin, a.signin.Verify, "email"
	default:
		return nil
	}

	if form.Phase() != flows.AwaitingCode {
		fmt.Fprintf(a.out, "Request a code first: type '%s'\n", hint)
		return nil
	}

	code, err := GetCode(a.reader, a.out)
	if err != nil {
		return err
	}
	form.SetCode(code)

	verify(ctx)
	switch a.route() {
	case shell.RouteSignup:
		a.printMessage(a.signup.Message())
	case shell.RouteVerify:
		a.printMessage(a.signin.Message())
	default:
		fmt.Fprintln(a.out, flows.MsgVerified)
	}
	return nil
}

// Resend requests a new sign-in code once the cooldown has passed.
func (a *App) Resend(ctx context.Context) error {
	if !a.signin.CanResend() {
		if a.signin.Phase() != flows.AwaitingCode {
			fmt.Fprintln(a.out, "Request a code first: type 'email'")
		} else {
			fmt.Fprintf(a.out, "Resend available in %ds\n", a.signin.Remaining())
		}
		return nil
	}

	a.signin.Resend(ctx)
	a.printMessage(a.signin.Message())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.shell.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	sess, ok := a.shell.Session()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	u := sess.User
	fmt.Fprintf(a.out, "Name:          %s\n", orDash(u.Name))
	fmt.Fprintf(a.out, "Email:         %s\n", orDash(u.Email))
	fmt.Fprintf(a.out, "Date of birth: %s\n", orDash(u.DateOfBirth))
	if u.UserID != "" {
		fmt.Fprintf(a.out, "User ID:       %s\n", u.UserID)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
