package entity

import (
	"io"
	"time"
)

// DocumentRecord is one previously processed document as listed by the backend.
// SessionID is the join key between a document and its chat transcript.
type DocumentRecord struct {
	SessionID string
	Title     string
	Time      string // submission timestamp, see domain.SubmissionTimeLayout
	HasChat   bool
}

// SessionDescriptor identifies the document a chat screen is bound to.
type SessionDescriptor struct {
	SessionID string
	Title     string
}

// Descriptor returns the descriptor used to open a chat on this document.
func (d DocumentRecord) Descriptor() SessionDescriptor {
	return SessionDescriptor{SessionID: d.SessionID, Title: d.Title}
}

// UploadFile is a local file selected for summarization.
type UploadFile struct {
	Name        string // original filename, used as the document title
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Document is the dev backend's stored view of an uploaded document.
type Document struct {
	SessionID string
	UserID    string
	Title     string
	Time      string
	FullText  string
	Summary   string
	HasChat   bool
	CreatedAt time.Time
}

// Record projects the stored document onto the listing shape.
func (d *Document) Record() DocumentRecord {
	return DocumentRecord{
		SessionID: d.SessionID,
		Title:     d.Title,
		Time:      d.Time,
		HasChat:   d.HasChat,
	}
}
