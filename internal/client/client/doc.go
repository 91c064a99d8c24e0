// Package client is the gateway to the remote notes API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     RequestOTP, VerifyOTP, ListNotes, CreateNote, DeleteNote.
//  2. An HTTP/JSON implementation (see HTTPClient) whose round tripper
//     attaches the bearer token to every request and reacts to HTTP 401 by
//     clearing the stored session and emitting the unauthorized event.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable, rejected credentials as
// ErrUnauthorized, and every other non-2xx reply as *RequestError carrying
// the server's message. Match them with errors.Is / errors.As.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. The token and the unauthorized
// handler are guarded by a mutex.
package client
