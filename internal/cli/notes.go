package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/models"
	"github.com/kishore934612-boop/ManagerX-2.0/internal/richtext"
)

func noteRows(notes []models.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

func (c *CLI) printNotes(notes []models.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(c.out, "No notes.")
		return
	}
	for i, n := range notes {
		fmt.Fprintln(c.out, formatNote(i+1, n))
	}
}

func (c *CLI) ListNotes(context.Context) error {
	c.printNotes(c.app.Notes.Filtered())
	return nil
}

// AddNote prompts for a title, a markdown body and an optional color. The
// body is stored as HTML.
func (c *CLI) AddNote(ctx context.Context) error {
	title, err := getSimpleText(c.reader, "Title", c.out)
	if err != nil {
		return err
	}
	if title == "" {
		return errors.New("title is required")
	}

	body, err := getMultiline(c.reader, "Content (markdown)", c.out)
	if err != nil {
		return err
	}
	content, err := richtext.ToHTML(body)
	if err != nil {
		return err
	}

	color, err := getSimpleText(c.reader, "Color, e.g. #fde68a (optional)", c.out)
	if err != nil {
		return err
	}

	n := c.app.Notes.CreateNote(ctx, models.Note{
		Title:   title,
		Content: content,
		Color:   color,
		UserID:  c.userID(),
	})
	if n == nil {
		return takeErr(c.app.Notes)
	}
	fmt.Fprintln(c.out, okColor.Sprint("Note created."))
	return nil
}

// EditNote prompts for a new title, body and color of a row of the note
// view. Empty answers keep the current values.
func (c *CLI) EditNote(ctx context.Context, ref string) error {
	id, err := resolve(ref, noteRows(c.app.Notes.Filtered()))
	if err != nil {
		return err
	}
	notes := c.app.Notes.Notes()
	i := slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return fmt.Errorf("unknown id %q", id)
	}
	n := notes[i]

	v, changed, err := c.editField("Title", n.Title, false)
	if err != nil {
		return err
	}
	if changed {
		n.Title = v
	}

	body, err := getMultiline(c.reader, "New content (markdown, empty keeps the current text)", c.out)
	if err != nil {
		return err
	}
	if body != "" {
		if n.Content, err = richtext.ToHTML(body); err != nil {
			return err
		}
	}

	v, changed, err = c.editField("Color", n.Color, true)
	if err != nil {
		return err
	}
	if changed {
		n.Color = v
	}

	c.app.Notes.UpdateNote(ctx, n)
	if err := takeErr(c.app.Notes); err != nil {
		return err
	}
	fmt.Fprintln(c.out, okColor.Sprint("Note updated."))
	return nil
}

// PinNote toggles the pin of a row of the note view.
func (c *CLI) PinNote(ctx context.Context, ref string) error {
	id, err := resolve(ref, noteRows(c.app.Notes.Filtered()))
	if err != nil {
		return err
	}
	c.app.Notes.ToggleNotePin(ctx, id)
	return takeErr(c.app.Notes)
}

func (c *CLI) DeleteNote(ctx context.Context, ref string) error {
	id, err := resolve(ref, noteRows(c.app.Notes.Filtered()))
	if err != nil {
		return err
	}
	c.app.Notes.DeleteNote(ctx, id)
	if err := takeErr(c.app.Notes); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Note deleted.")
	return nil
}
