package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dmitrijs2005/docusage/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SavesTokenAndWipesPassword(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc)
	pw := []byte("pw")
	stubInputs(t, "a@example.com", pw)

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "a@example.com", fc.gotEmail)
	assert.Equal(t, []byte("pw"), fc.gotPass)
	assert.Equal(t, []byte{0, 0}, pw)
	assert.Contains(t, out.String(), "Signed in as a@example.com")

	saved, err := a.tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "login-token", saved)
}

func TestRegister_Failure(t *testing.T) {
	fc := &fakeClient{err: client.ErrAlreadyExists}
	a, _ := newTestApp(t, fc)
	stubInputs(t, "a@example.com", []byte("pw"))

	err := a.Register(context.Background())
	assert.ErrorIs(t, err, client.ErrAlreadyExists)

	_, statErr := os.Stat(a.tokens.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRegister_Success(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(t, fc)
	stubInputs(t, "new@example.com", []byte("pw"))

	require.NoError(t, a.Register(context.Background()))
	assert.True(t, a.isLoggedIn())
}

func TestNewApp_RestoresSavedToken(t *testing.T) {
	fc := &fakeClient{}
	a, _ := newTestApp(t, fc)
	require.NoError(t, a.tokens.Save("saved"))

	fc2 := &fakeClient{}
	_, err := newApp(a.config, fc2, nil, os.Stdout)
	require.NoError(t, err)
	assert.Equal(t, "saved", fc2.Token())
}

func TestLogout_ClearsToken(t *testing.T) {
	fc := &fakeClient{token: "tok"}
	a, _ := newTestApp(t, fc)
	require.NoError(t, a.tokens.Save("tok"))

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())

	saved, err := a.tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)

	// second logout is a no-op
	require.NoError(t, a.Logout(context.Background()))
}

func TestMe(t *testing.T) {
	fc := &fakeClient{token: "tok"}
	a, out := newTestApp(t, fc)

	require.NoError(t, a.Me(context.Background()))
	assert.Contains(t, out.String(), "email: a@example.com")

	fc.err = errors.New("down")
	assert.Error(t, a.Me(context.Background()))
}
