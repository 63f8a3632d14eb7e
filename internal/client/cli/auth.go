package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docusage/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password, creates the account and
// keeps the returned token.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Register(ctx, email, password); err != nil {
		return err
	}
	if err := a.tokens.Save(a.client.Token()); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Fprintln(a.out, "Registered and signed in as", email)
	return nil
}

// Login prompts for credentials and keeps the returned token.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Login(ctx, email, password); err != nil {
		return err
	}
	if err := a.tokens.Save(a.client.Token()); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Fprintln(a.out, "Signed in as", email)
	return nil
}

// Logout forgets the token locally. Tokens are not revoked server-side and
// stay valid until they expire.
func (a *App) Logout(context.Context) error {
	a.client.SetToken("")
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %d\nemail: %s\n", u.ID, u.Email)
	return nil
}
