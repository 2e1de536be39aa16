package database

import (
	"database/sql"
	"time"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

const documentColumns = "session_id, user_id, title, time, full_text, summary, has_chat, created_at"

// scanDocument reads one documents row into the domain entity
func scanDocument(row rowScanner) (*entity.Document, error) {
	var (
		d         entity.Document
		hasChat   int
		createdAt int64
	)
	if err := row.Scan(&d.SessionID, &d.UserID, &d.Title, &d.Time, &d.FullText, &d.Summary, &hasChat, &createdAt); err != nil {
		return nil, err
	}
	d.HasChat = hasChat != 0
	d.CreatedAt = time.Unix(0, createdAt)
	return &d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// rollback is deferred after BeginTx; it is a no-op once the tx committed
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
