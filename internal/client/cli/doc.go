// Package cli provides the interactive notes command-line client.
//
// It wires configuration, session storage, the API gateway, the entry flows
// and the notes panel, and runs a REPL whose commands depend on the current
// route:
//
//	/signup   signup, code, signin, help, exit
//	/verify   email, code, resend, signup, help, exit
//	/         list, new, delete <id>, logout, whoami, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See App and runREPL for details.
package cli
