package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/shell"
)

// enterRoute mounts the screen for the current route when it changed since
// the last prompt. Mounting may move the route again (a rejected token on
// the notes screen), so it repeats until the route is stable.
func (a *App) enterRoute(ctx context.Context) {
	for i := 0; i < 3; i++ {
		r := a.route()
		if r == a.mounted {
			return
		}
		if a.mounted == shell.RouteVerify {
			a.signin.Close()
		}
		a.mounted = r

		switch r {
		case shell.RouteNotes:
			fmt.Fprintf(a.out, "Welcome, %s!\n", a.panel.User().DisplayName())
			a.panel.Mount(ctx)
			a.printNotes()

		case shell.RouteVerify:
			a.signin.Mount(ctx)
			if email := a.signin.Email(); email != "" {
				fmt.Fprintf(a.out, "Sign in as %s: type 'email' to request a code.\n", email)
			} else {
				fmt.Fprintln(a.out, "Sign in: type 'email' to request a code.")
			}

		case shell.RouteSignup:
			a.signup.Reset()
			fmt.Fprintln(a.out, "Create an account: type 'signup', or 'signin' if you already have one.")
		}
	}
}

func (a *App) printMessage(m models.Message) {
	switch m.Kind {
	case models.KindNone:
	case models.KindError:
		fmt.Fprintln(a.out, "Error:", m.Text)
	default:
		fmt.Fprintln(a.out, m.Text)
	}
}
