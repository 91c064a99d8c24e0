// Package flows implements the two OTP entry flows of the notes client.
//
// Signup collects name, date of birth and email, requests a code and redeems
// it; the profile is read from the issued token and falls back to what the
// user typed. SignIn collects only an email, restores a pending email on
// mount, and allows resending the code after a 60 second cooldown.
//
// Both flows are two-phase state machines (CollectingIdentity, then
// AwaitingCode). They are driven from a single goroutine; only the resend
// countdown runs in the background and it guards its own state.
package flows
