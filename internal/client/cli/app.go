package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/docusage/internal/client/client"
	"github.com/dmitrijs2005/docusage/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	tokens tokenFile
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewDocuSageClient(c.ServerEndpointAddr, c.MaxFileBytes)
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, apiClient client.Client, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config: c,
		client: apiClient,
		tokens: tokenFile{path: c.TokenFile},
		reader: bufio.NewReader(in),
		out:    out,
	}

	token, err := a.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	apiClient.SetToken(token)

	return a, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// Run executes args as a single command, or starts the REPL when args is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.client.Close()

	if len(args) == 0 {
		fmt.Fprintln(a.out, "DocuSage CLI (type 'help' for commands)")
		runREPL(ctx, a, a.status, bufio.NewScanner(a.reader), a.out)
		return nil
	}

	return dispatch(ctx, a, args, a.out)
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "(signed in)"
	}
	return ""
}
