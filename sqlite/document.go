package sqlite

import (
	"context"

	"github.com/docdex/docdex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docdex.DocumentService = (*DocumentService)(nil)

// DocumentService implements docdex.DocumentService using SQLite.
//
// The document store is rebuilt wholesale on every index build, so the
// service exposes bulk replacement and ordered retrieval rather than
// per-document CRUD. Row positions align one-to-one with vector index
// rows.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// ReplaceAll atomically replaces the stored documents with docs,
// assigning positions in slice order. Documents without an ID are
// assigned one. A validation failure rolls back the whole batch.
func (s *DocumentService) ReplaceAll(ctx context.Context, docs []*docdex.Document) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return err
	}

	for position, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
		if doc.ID == "" {
			doc.ID = uuid.New().String()
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, position, source, title, content)
			VALUES (?, ?, ?, ?, ?)
		`, doc.ID, position, doc.Source, doc.Title, doc.Content); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AllDocuments returns every stored document in position order.
func (s *DocumentService) AllDocuments(ctx context.Context) ([]*docdex.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, title, content
		FROM documents
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docdex.Document
	for rows.Next() {
		var doc docdex.Document
		if err := rows.Scan(&doc.ID, &doc.Source, &doc.Title, &doc.Content); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
