package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/noteapp/internal/client/client"
	"github.com/dmitrijs2005/noteapp/internal/client/models"
)

// NoteService wraps the notes endpoints. Nothing is cached; the caller
// owns the displayed list.
type NoteService interface {
	List(ctx context.Context) ([]models.Note, error)
	Create(ctx context.Context, title, content string) (models.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteService struct {
	client client.Client
}

func NewNoteService(client client.Client) NoteService {
	return &noteService{client: client}
}

func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	notes, err := s.client.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Create rejects an empty title with ErrEmptyTitle before any request.
func (s *noteService) Create(ctx context.Context, title, content string) (models.Note, error) {
	in := models.NoteInput{Title: title, Content: content}
	if err := Validate(in); err != nil {
		return models.Note{}, err
	}

	note, err := s.client.CreateNote(ctx, in)
	if err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}
