package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	logged   bool
	calls    []string
	uploadOf string
	dlDir    string
	err      error
}

func (f *fakeExec) isLoggedIn() bool { return f.logged }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return f.err
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.logged = true
	return f.err
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.logged = false
	return nil
}
func (f *fakeExec) Me(context.Context) error {
	f.calls = append(f.calls, "me")
	return f.err
}
func (f *fakeExec) Upload(_ context.Context, path string) error {
	f.calls = append(f.calls, "upload")
	f.uploadOf = path
	return nil
}
func (f *fakeExec) Files(context.Context) error {
	f.calls = append(f.calls, "files")
	return nil
}
func (f *fakeExec) Download(_ context.Context, _ string, dir string) error {
	f.calls = append(f.calls, "download")
	f.dlDir = dir
	return nil
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	f := &fakeExec{}

	require.NoError(t, dispatch(ctx, f, []string{"help"}, &out))
	assert.Contains(t, out.String(), helpSignedOut)

	require.NoError(t, dispatch(ctx, f, []string{"upload", "a.pdf"}, &out))
	assert.Equal(t, "a.pdf", f.uploadOf)

	require.NoError(t, dispatch(ctx, f, []string{"download", "id1"}, &out))
	assert.Equal(t, ".", f.dlDir)
	require.NoError(t, dispatch(ctx, f, []string{"download", "id1", "/tmp/x"}, &out))
	assert.Equal(t, "/tmp/x", f.dlDir)

	assert.ErrorContains(t, dispatch(ctx, f, []string{"upload"}, &out), "usage")
	assert.ErrorContains(t, dispatch(ctx, f, []string{"download"}, &out), "usage")
	assert.ErrorContains(t, dispatch(ctx, f, []string{"bogus"}, &out), "unknown command")
}

func TestRunREPL_Session(t *testing.T) {
	var out bytes.Buffer
	f := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader("help\nlogin\n\nhelp\nme\nfiles\nlogout\nquit\nme\n"))

	runREPL(context.Background(), f, func() string { return "" }, sc, &out)

	assert.Equal(t, []string{"login", "me", "files", "logout"}, f.calls)
	assert.Contains(t, out.String(), helpSignedOut)
	assert.Contains(t, out.String(), helpSignedIn)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	var out bytes.Buffer
	f := &fakeExec{err: errors.New("server unavailable")}
	sc := bufio.NewScanner(strings.NewReader("me\nfoo\n"))

	runREPL(context.Background(), f, func() string { return "" }, sc, &out)

	assert.Contains(t, out.String(), "error: server unavailable")
	assert.Contains(t, out.String(), "error: unknown command: foo")
}

func TestApp_RunSingleCommandClosesClient(t *testing.T) {
	fc := &fakeClient{token: "tok"}
	a, out := newTestApp(t, fc)

	require.NoError(t, a.Run(context.Background(), []string{"me"}))
	assert.True(t, fc.closed)
	assert.Contains(t, out.String(), "id: 5")
}

func TestApp_RunREPLOnEmptyArgs(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc)

	require.NoError(t, a.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "DocuSage CLI")
	assert.True(t, fc.closed)
}
