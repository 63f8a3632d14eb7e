package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docusage/internal/client/client"
	"github.com/dmitrijs2005/docusage/internal/client/config"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token    string
	err      error
	gotEmail string
	gotPass  []byte
	uploaded struct {
		name, contentType string
		content           []byte
	}
	files   []*client.File
	content []byte
	closed  bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Register(_ context.Context, email string, password []byte) error {
	f.gotEmail, f.gotPass = email, append([]byte(nil), password...)
	if f.err != nil {
		return f.err
	}
	f.token = "reg-token"
	return nil
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) error {
	f.gotEmail, f.gotPass = email, append([]byte(nil), password...)
	if f.err != nil {
		return f.err
	}
	f.token = "login-token"
	return nil
}

func (f *fakeClient) Me(context.Context) (*client.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.User{ID: 5, Email: "a@example.com"}, nil
}

func (f *fakeClient) UploadFile(_ context.Context, filename, contentType string, content []byte) (*client.File, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded.name, f.uploaded.contentType, f.uploaded.content = filename, contentType, content
	return &client.File{ID: "f1", Filename: filename, Size: int64(len(content))}, nil
}

func (f *fakeClient) ListFiles(context.Context) ([]*client.File, error) {
	return f.files, f.err
}

func (f *fakeClient) DownloadFile(_ context.Context, id string) (*client.File, []byte, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return &client.File{ID: id, Filename: "report.pdf"}, f.content, nil
}

func (f *fakeClient) Ping(context.Context) error { return f.err }
func (f *fakeClient) Token() string              { return f.token }
func (f *fakeClient) SetToken(token string)      { f.token = token }

func newTestApp(t *testing.T, fc *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		RequestTimeout: time.Second,
		TokenFile:      filepath.Join(t.TempDir(), "cfg", "token"),
	}
	var out bytes.Buffer
	a, err := newApp(cfg, fc, strings.NewReader(""), &out)
	require.NoError(t, err)
	return a, &out
}

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
