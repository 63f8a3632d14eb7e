package client

import (
	"context"
	"time"
)

// User is the account the current token belongs to.
type User struct {
	ID    int64
	Email string
}

// File is uploaded file metadata as reported by the server.
type File struct {
	ID          string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

type Client interface {
	Close() error
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Me(ctx context.Context) (*User, error)
	UploadFile(ctx context.Context, filename, contentType string, content []byte) (*File, error)
	ListFiles(ctx context.Context) ([]*File, error)
	DownloadFile(ctx context.Context, id string) (*File, []byte, error)
	Ping(ctx context.Context) error
	Token() string
	SetToken(token string)
}
