package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docusage/internal/server/auth"
	"github.com/dmitrijs2005/docusage/internal/server/models"
)

type fakeUsers struct {
	token      string
	err        error
	identities map[string]*models.Identity
	resolveErr error
	gotEmail   string
	gotPass    string
}

func (f *fakeUsers) Register(_ context.Context, email, password string) (string, error) {
	f.gotEmail, f.gotPass = email, password
	return f.token, f.err
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (string, error) {
	f.gotEmail, f.gotPass = email, password
	return f.token, f.err
}

func (f *fakeUsers) Resolve(_ context.Context, token string) (*models.Identity, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	id, ok := f.identities[token]
	if !ok {
		return nil, auth.ErrAuthentication
	}
	return id, nil
}

type fakeFiles struct {
	files   []*models.File
	content []byte
	err     error
	owner   *models.Identity
}

func (f *fakeFiles) Upload(_ context.Context, owner *models.Identity, filename, contentType string, content []byte) (*models.File, error) {
	f.owner = owner
	if f.err != nil {
		return nil, f.err
	}
	return &models.File{ID: "f1", UserID: owner.ID, Filename: filename, ContentType: contentType, Size: int64(len(content))}, nil
}

func (f *fakeFiles) List(_ context.Context, owner *models.Identity) ([]*models.File, error) {
	f.owner = owner
	return f.files, f.err
}

func (f *fakeFiles) Download(_ context.Context, owner *models.Identity, id string) (*models.File, []byte, error) {
	f.owner = owner
	if f.err != nil {
		return nil, nil, f.err
	}
	for _, file := range f.files {
		if file.ID == id {
			return file, f.content, nil
		}
	}
	return nil, nil, errNotFound
}

var errNotFound = errors.New("fake: not found")
