package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/noteapp/internal/client/notespanel"
)

const timeLayout = "2006-01-02 15:04"

// List reloads the notes from the server and prints them.
func (a *App) List(ctx context.Context) error {
	a.panel.LoadNotes(ctx)
	a.printNotes()
	return nil
}

// New prompts for a title and content and creates the note.
func (a *App) New(ctx context.Context) error {
	a.panel.OpenForm()

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		a.panel.CancelForm()
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		a.panel.CancelForm()
		return err
	}

	a.panel.SetTitle(title)
	a.panel.SetContent(content)
	a.panel.SubmitForm(ctx)
	a.printMessage(a.panel.Message())
	if a.panel.FormOpen() {
		a.panel.CancelForm()
	}
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	a.panel.DeleteNote(ctx, id)
	a.printMessage(a.panel.Message())
	return nil
}

func (a *App) printNotes() {
	if a.panel.State() == notespanel.Failed {
		a.printMessage(a.panel.Message())
		return
	}

	notes := a.panel.Notes()
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes yet. Type 'new' to create one.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCREATED\tCONTENT")
	for _, n := range notes {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.Local().Format(timeLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, created, preview(n.Content))
	}
	_ = tw.Flush()
}

// preview is the first line of content, cut to 40 runes.
func preview(content string) string {
	r := []rune(content)
	for i, c := range r {
		if c == '\n' {
			r = r[:i]
			break
		}
	}
	if len(r) > 40 {
		return string(r[:39]) + "…"
	}
	return string(r)
}
