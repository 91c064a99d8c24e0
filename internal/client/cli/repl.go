package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/noteapp/internal/client/shell"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	route() string
	enterRoute(ctx context.Context)
	navigate(path string)

	Signup(ctx context.Context) error
	Email(ctx context.Context) error
	Code(ctx context.Context) error
	Resend(ctx context.Context) error

	List(ctx context.Context) error
	New(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

var helpText = map[string]string{
	shell.RouteSignup: "Available commands: signup, code, signin, exit",
	shell.RouteVerify: "Available commands: email, code, resend, signup, exit",
	shell.RouteNotes:  "Available commands: (l)ist, new, delete <id>, whoami, logout, exit",
}

// runREPL reads commands line by line and dispatches them to a. Which
// commands exist depends on the current route; the screen for a route is
// mounted before each prompt. The loop exits on EOF or "exit"/"quit".
//
// Handler errors are not reported here; handlers print their own outcome.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.enterRoute(ctx)

		printlnFn(fmt.Sprintf("noteapp %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText[a.route()])
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !dispatch(ctx, a, cmd, args) {
			printlnFn("Unknown command:", cmd)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch a.route() {
	case shell.RouteSignup:
		switch cmd {
		case "signup":
			_ = a.Signup(ctx)
		case "code":
			_ = a.Code(ctx)
		case "signin":
			a.navigate(shell.RouteVerify)
		default:
			return false
		}

	case shell.RouteVerify:
		switch cmd {
		case "email":
			_ = a.Email(ctx)
		case "code":
			_ = a.Code(ctx)
		case "resend":
			_ = a.Resend(ctx)
		case "signup":
			a.navigate(shell.RouteSignup)
		default:
			return false
		}

	case shell.RouteNotes:
		switch cmd {
		case "l", "list":
			_ = a.List(ctx)
		case "new":
			_ = a.New(ctx)
		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				return true
			}
			_ = a.Delete(ctx, args[0])
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			return false
		}

	default:
		return false
	}
	return true
}
