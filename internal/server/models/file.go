package models

import "time"

// File is the metadata row of an uploaded document. The bytes live in the
// blob store under StorageKey, which is "<user id>/<filename>".
type File struct {
	ID          string
	UserID      int64
	Filename    string
	StorageKey  string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
