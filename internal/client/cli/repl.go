package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL and dispatch need.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Files(ctx context.Context) error
	Download(ctx context.Context, id, dir string) error
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: me, upload <path>, files, download <id> [dir], logout, exit"
)

// dispatch runs one command. Unknown commands and missing arguments are errors.
func dispatch(ctx context.Context, a execIface, parts []string, w io.Writer) error {
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, helpSignedIn)
		} else {
			fmt.Fprintln(w, helpSignedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "upload":
		if len(args) != 1 {
			return fmt.Errorf("usage: upload <path>")
		}
		return a.Upload(ctx, args[0])
	case "files", "ls":
		return a.Files(ctx)
	case "download":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: download <id> [dir]")
		}
		dir := "."
		if len(args) == 2 {
			dir = args[1]
		}
		return a.Download(ctx, args[0], dir)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// runREPL reads commands from scanner until EOF, "exit" or "quit".
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "docusage %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, parts, w); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
	}
}
