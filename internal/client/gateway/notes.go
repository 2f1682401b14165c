package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noteboard/noteboard/internal/client/models"
)

// NotesGateway wraps the notes service.
type NotesGateway struct {
	api apiClient
}

// NewNotesGateway builds a gateway over the notes service base URL.
// Pass nil to use http.DefaultClient.
func NewNotesGateway(baseURL string, httpClient *http.Client) *NotesGateway {
	return &NotesGateway{api: newAPIClient(baseURL, httpClient)}
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List returns the caller's full note collection.
func (g *NotesGateway) List(ctx context.Context, token string) ([]models.Note, error) {
	var notes []models.Note
	err := g.api.doJSON(ctx, "notes.list", http.MethodGet, "/notes/", token, nil, &notes)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Create stores a new note and returns the server's version of it.
func (g *NotesGateway) Create(ctx context.Context, token, title, content string) (*models.Note, error) {
	var note models.Note
	err := g.api.doJSON(ctx, "notes.create", http.MethodPost, "/notes/",
		token, notePayload{Title: title, Content: content}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces a note's title and content.
func (g *NotesGateway) Update(ctx context.Context, token string, id int64, title, content string) (*models.Note, error) {
	var note models.Note
	err := g.api.doJSON(ctx, "notes.update", http.MethodPut, fmt.Sprintf("/notes/%d", id),
		token, notePayload{Title: title, Content: content}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note.
func (g *NotesGateway) Delete(ctx context.Context, token string, id int64) error {
	return g.api.doJSON(ctx, "notes.delete", http.MethodDelete, fmt.Sprintf("/notes/%d", id),
		token, nil, nil)
}
