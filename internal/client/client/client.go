package client

import (
	"context"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
)

type Client interface {
	RequestOTP(ctx context.Context, req models.OTPRequest) (models.MessageResponse, error)
	VerifyOTP(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, in models.NoteInput) (models.Note, error)
	DeleteNote(ctx context.Context, id string) error

	// SetToken sets the default token used when the session store holds none.
	SetToken(token string)
	Token() string

	// OnUnauthorized registers the handler fired after any 401 reply. A later
	// call replaces the earlier handler.
	OnUnauthorized(fn func())
}

// TokenStore is the part of the session store the gateway needs.
type TokenStore interface {
	Token(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}
