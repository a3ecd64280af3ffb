package repository

import (
	"database/sql"

	"writesync/internal/document/model"
	"writesync/pkg/logger"
)

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(d *model.Document) error {
	_, err := r.DB.Exec(`INSERT INTO documents (id, title, content, owner_id, last_saved, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Title, d.Content, d.OwnerID, d.LastSaved, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create document: %v", err)
	}
	return err
}

func (r *DocumentRepository) GetByID(id string) (*model.Document, error) {
	var d model.Document
	err := r.DB.QueryRow(`SELECT id, title, content, owner_id, last_saved, created_at, updated_at FROM documents WHERE id = $1`, id).
		Scan(&d.ID, &d.Title, &d.Content, &d.OwnerID, &d.LastSaved, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to get document %s: %v", id, err)
		}
		return nil, err
	}
	return &d, nil
}

// ListByOwner returns the owner's documents ordered by last_saved descending.
// Content is included so the service can derive snippets.
func (r *DocumentRepository) ListByOwner(ownerID string) ([]model.Document, error) {
	rows, err := r.DB.Query(`SELECT id, title, content, owner_id, last_saved, created_at, updated_at FROM documents WHERE owner_id = $1 ORDER BY last_saved DESC`, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list documents for user %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.OwnerID, &d.LastSaved, &d.CreatedAt, &d.UpdatedAt); err != nil {
			continue
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) Update(d *model.Document) error {
	_, err := r.DB.Exec(`UPDATE documents SET title = $1, content = $2, last_saved = $3, updated_at = $4 WHERE id = $5`,
		d.Title, d.Content, d.LastSaved, d.UpdatedAt, d.ID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update document %s: %v", d.ID, err)
	}
	return err
}

func (r *DocumentRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete document %s: %v", id, err)
	}
	return err
}
