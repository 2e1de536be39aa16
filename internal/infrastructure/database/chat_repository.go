package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// chatRepository is the sqlite implementation of ChatRepository.
// A thread row owns its messages; message ids give the transcript order.
type chatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a ChatRepository on db.
func NewChatRepository(db *sql.DB) domain.ChatRepository {
	return &chatRepository{db: db}
}

// Create starts a thread for a session. Existing messages are discarded so
// the thread always starts empty.
func (r *chatRepository) Create(ctx context.Context, thread *entity.ChatThread) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, thread.SessionID); err != nil {
		return fmt.Errorf("failed to reset chat: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO chats (session_id, user_id, document_title) VALUES (?, ?, ?)`,
		thread.SessionID, thread.UserID, thread.DocumentTitle,
	); err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	for _, m := range thread.History {
		if err := insertMessage(ctx, tx, thread.SessionID, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns the thread of a session with its full history
func (r *chatRepository) Get(ctx context.Context, sessionID string) (*entity.ChatThread, error) {
	thread := &entity.ChatThread{SessionID: sessionID, History: []entity.ChatMessage{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, document_title FROM chats WHERE session_id = ?`, sessionID,
	).Scan(&thread.UserID, &thread.DocumentTitle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Chat session not found")
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content FROM chat_messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			role string
			msg  entity.ChatMessage
		)
		if err := rows.Scan(&role, &msg.Content); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.Role = entity.Role(role)
		thread.History = append(thread.History, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return thread, nil
}

// Append adds messages to the end of the thread in one transaction
func (r *chatRepository) Append(ctx context.Context, sessionID string, msgs ...entity.ChatMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM chats WHERE session_id = ?`, sessionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("Chat session not found")
	}
	if err != nil {
		return fmt.Errorf("failed to get chat: %w", err)
	}

	for _, m := range msgs {
		if err := insertMessage(ctx, tx, sessionID, m); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertMessage(ctx context.Context, tx *sql.Tx, sessionID string, m entity.ChatMessage) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chat_messages (session_id, role, content) VALUES (?, ?, ?)`,
		sessionID, string(m.Role), m.Content,
	); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}
