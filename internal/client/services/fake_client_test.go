package services

import (
	"context"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	RequestOTPRet models.MessageResponse
	RequestOTPErr error
	VerifyRet     models.VerifyResponse
	VerifyErr     error
	ListRet       []models.Note
	ListErr       error
	CreateRet     models.Note
	CreateErr     error
	DeleteErr     error

	Calls         int
	LastOTPReq    models.OTPRequest
	LastVerifyReq models.VerifyRequest
	LastNoteInput models.NoteInput
	LastDeleteID  string
}

func (f *fakeClient) RequestOTP(_ context.Context, req models.OTPRequest) (models.MessageResponse, error) {
	f.Calls++
	f.LastOTPReq = req
	return f.RequestOTPRet, f.RequestOTPErr
}

func (f *fakeClient) VerifyOTP(_ context.Context, req models.VerifyRequest) (models.VerifyResponse, error) {
	f.Calls++
	f.LastVerifyReq = req
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) ListNotes(context.Context) ([]models.Note, error) {
	f.Calls++
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateNote(_ context.Context, in models.NoteInput) (models.Note, error) {
	f.Calls++
	f.LastNoteInput = in
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) DeleteNote(_ context.Context, id string) error {
	f.Calls++
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) SetToken(string)       {}
func (f *fakeClient) Token() string         { return "" }
func (f *fakeClient) OnUnauthorized(func()) {}
