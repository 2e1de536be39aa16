package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// documentRepository is the sqlite implementation of DocumentRepository.
type documentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a DocumentRepository on db.
func NewDocumentRepository(db *sql.DB) domain.DocumentRepository {
	return &documentRepository{db: db}
}

// Create stores a new document. CreatedAt orders the listing.
func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.SessionID, doc.UserID, doc.Title, doc.Time, doc.FullText, doc.Summary,
		boolToInt(doc.HasChat), doc.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Get finds a document by session id
func (r *documentRepository) Get(ctx context.Context, sessionID string) (*entity.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE session_id = ?`, sessionID)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Document context not found")
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// ListByUser returns the user's documents, newest first. Documents created
// in the same instant keep reverse insertion order.
func (r *documentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []*entity.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// MarkChatted sets has_chat on the document
func (r *documentRepository) MarkChatted(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE documents SET has_chat = 1 WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to mark document chatted: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError("Document context not found")
	}
	return nil
}
