package service

import (
	"database/sql"
	"strings"
	"time"

	"writesync/internal/document/model"
	"writesync/internal/document/repository"
	"writesync/pkg/apperror"

	"github.com/google/uuid"
)

const (
	defaultTitle   = "Untitled Document"
	snippetRuneMax = 100
)

type DocumentService struct {
	Repo *repository.DocumentRepository
}

func NewDocumentService(repo *repository.DocumentRepository) *DocumentService {
	return &DocumentService{Repo: repo}
}

// Create persists a new document owned by userID, applying defaults for
// omitted title and content.
func (s *DocumentService) Create(userID, title, content string) (*model.Document, error) {
	if title == "" {
		title = defaultTitle
	}
	now := time.Now().UTC()
	d := &model.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		OwnerID:   userID,
		LastSaved: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get returns the document if it exists and belongs to userID. Reads are
// owner-restricted with the same failure rules as update and delete.
func (s *DocumentService) Get(id, userID string) (*model.Document, error) {
	return s.loadOwned(id, userID)
}

// List returns summaries of the user's documents, most recently saved first.
func (s *DocumentService) List(userID string) ([]model.Summary, error) {
	docs, err := s.Repo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.Summary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, model.Summary{
			ID:        d.ID,
			Title:     d.Title,
			Snippet:   snippet(d.Content),
			LastSaved: d.LastSaved,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return summaries, nil
}

// Update merges the provided fields into the stored record, refreshes
// last_saved and returns the saved document.
func (s *DocumentService) Update(id, userID string, req model.UpdateRequest) (*model.Document, error) {
	d, err := s.loadOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Content != nil {
		d.Content = *req.Content
	}

	now := time.Now().UTC()
	// last_saved must strictly increase across successive updates.
	if !now.After(d.LastSaved) {
		now = d.LastSaved.Add(time.Millisecond)
	}
	d.LastSaved = now
	d.UpdatedAt = now

	if err := s.Repo.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete permanently removes the document. No soft delete; a second call
// reports NotFound.
func (s *DocumentService) Delete(id, userID string) error {
	if _, err := s.loadOwned(id, userID); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *DocumentService) loadOwned(id, userID string) (*model.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.New(apperror.ValidationError, "Invalid document id")
	}
	d, err := s.Repo.GetByID(id)
	if err == sql.ErrNoRows {
		return nil, apperror.New(apperror.NotFound, "Document not found")
	} else if err != nil {
		return nil, err
	}
	if d.OwnerID != userID {
		return nil, apperror.New(apperror.Forbidden, "Access denied")
	}
	return d, nil
}

func snippet(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= snippetRuneMax {
		return flat
	}
	return string(runes[:snippetRuneMax]) + "..."
}
