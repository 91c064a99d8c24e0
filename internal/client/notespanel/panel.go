// Package notespanel is the authenticated notes view: it loads the user's
// notes, creates and deletes them, and hands authorization failures to the
// session owner.
//
// The displayed list only changes after the server confirms a mutation.
package notespanel

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/noteapp/internal/client/client"
	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/client/services"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

const (
	MsgTitleRequired = "Title required"
	MsgCreated       = "Note created successfully!"
	MsgCreateFailed  = "Create failed"
	MsgDeleted       = "Note deleted successfully!"
	MsgDeleteFailed  = "Delete failed"
	MsgLoadFailed    = "Failed to load notes"
)

type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "error"
	}
}

// SessionContext is what the panel needs from the session owner.
type SessionContext interface {
	Session() (models.Session, bool)
	Logout(ctx context.Context)
}

type Panel struct {
	notes   services.NoteService
	session SessionContext
	log     logging.Logger

	state State
	list  []models.Note
	busy  bool
	msg   models.Message

	formOpen bool
	title    string
	content  string
}

func New(notes services.NoteService, session SessionContext, log logging.Logger) *Panel {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Panel{notes: notes, session: session, log: log.With("component", "notes")}
}

func (p *Panel) State() State            { return p.state }
func (p *Panel) Busy() bool              { return p.busy }
func (p *Panel) Message() models.Message { return p.msg }
func (p *Panel) FormOpen() bool          { return p.formOpen }
func (p *Panel) Title() string           { return p.title }
func (p *Panel) Content() string         { return p.content }

// Notes returns a copy of the displayed list, newest first.
func (p *Panel) Notes() []models.Note {
	return append([]models.Note(nil), p.list...)
}

// User is the profile of the current session, for the welcome line.
func (p *Panel) User() models.UserProfile {
	sess, _ := p.session.Session()
	return sess.User
}

// Mount loads the list.
func (p *Panel) Mount(ctx context.Context) {
	p.list = nil
	p.msg = models.Message{}
	p.formOpen, p.title, p.content = false, "", ""
	p.LoadNotes(ctx)
}

func (p *Panel) LoadNotes(ctx context.Context) {
	p.state = Loading

	notes, err := p.notes.List(ctx)
	if err != nil {
		p.fail(ctx, err, MsgLoadFailed)
		p.list = nil
		p.state = Failed
		return
	}

	p.list = notes
	p.state = Ready
}

// CreateNote rejects an empty title without a request. On success the
// returned note is prepended and true is returned.
func (p *Panel) CreateNote(ctx context.Context, title, content string) bool {
	p.busy = true
	defer func() { p.busy = false }()

	note, err := p.notes.Create(ctx, title, content)
	if errors.Is(err, services.ErrEmptyTitle) {
		p.msg = models.Failure(MsgTitleRequired)
		return false
	}
	if err != nil {
		p.fail(ctx, err, MsgCreateFailed)
		return false
	}

	p.list = append([]models.Note{note}, p.list...)
	p.msg = models.Success(MsgCreated)
	return true
}

// DeleteNote removes the note with id once the server confirms it.
func (p *Panel) DeleteNote(ctx context.Context, id string) bool {
	if err := p.notes.Delete(ctx, id); err != nil {
		p.fail(ctx, err, MsgDeleteFailed)
		return false
	}

	kept := p.list[:0:0]
	for _, n := range p.list {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	p.list = kept
	p.msg = models.Success(MsgDeleted)
	return true
}

func (p *Panel) OpenForm() {
	p.formOpen = true
}

func (p *Panel) SetTitle(title string)     { p.title = title }
func (p *Panel) SetContent(content string) { p.content = content }

// SubmitForm creates a note from the form fields. The form closes and is
// cleared only when the note was created.
func (p *Panel) SubmitForm(ctx context.Context) bool {
	if !p.formOpen {
		return false
	}
	if !p.CreateNote(ctx, p.title, p.content) {
		return false
	}
	p.formOpen, p.title, p.content = false, "", ""
	return true
}

// CancelForm closes the form and clears its fields and the message.
func (p *Panel) CancelForm() {
	p.formOpen, p.title, p.content = false, "", ""
	p.msg = models.Message{}
}

// fail records the message for err and, on 401, asks the session owner to
// log out.
func (p *Panel) fail(ctx context.Context, err error, fallback string) {
	if errors.Is(err, client.ErrUnauthorized) {
		p.log.Info(ctx, "session rejected by server")
		p.session.Logout(ctx)
	} else {
		p.log.Warn(ctx, "notes request failed", "error", err)
	}

	text := client.ServerMessage(err)
	if text == "" {
		text = fallback
	}
	p.msg = models.Failure(text)
}
