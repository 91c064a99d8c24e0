// Package models defines the client-side data models of the notes client:
// the session, the user profile, notes, and the request/response bodies of
// the remote API.
package models
