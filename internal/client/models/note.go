package models

import (
	"encoding/json"
	"time"
)

// Note is owned by the server; the client only caches it for display.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UnmarshalJSON accepts both "_id" and "id" and tolerates missing or
// malformed timestamps (they stay zero).
func (n *Note) UnmarshalJSON(b []byte) error {
	var raw struct {
		MongoID   string `json:"_id"`
		ID        string `json:"id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	n.ID = raw.MongoID
	if n.ID == "" {
		n.ID = raw.ID
	}
	n.Title = raw.Title
	n.Content = raw.Content
	n.CreatedAt = parseTime(raw.CreatedAt)
	n.UpdatedAt = parseTime(raw.UpdatedAt)
	return nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NoteInput is the body of POST /notes.
type NoteInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}
