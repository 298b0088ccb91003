// Package cli implements the AccountKeeper command-line client on top of
// cobra. Every command opens one connection, performs one call and prints
// the result as JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/accountkeeper/internal/client/client"
	"github.com/dmitrijs2005/accountkeeper/internal/client/config"
)

// ClientFactory opens a client for addr that sends token with every call.
type ClientFactory func(addr, token string) (client.Client, error)

type App struct {
	config    *config.Config
	newClient ClientFactory

	configPath string
	addr       string
	token      string
	timeout    time.Duration
}

// NewApp returns an App dialing the real gRPC endpoint.
func NewApp() *App {
	return newApp(func(addr, token string) (client.Client, error) {
		return client.NewAccountKeeperClient(addr, token)
	})
}

func newApp(f ClientFactory) *App {
	return &App{newClient: f}
}

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// GetPassword prints prompt to out and reads a line from the terminal
// without echo.
func GetPassword(prompt string, out io.Writer) ([]byte, error) {
	_, _ = fmt.Fprint(out, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(out)
	return pw, err
}

// passwordOr returns v when set, otherwise prompts for it.
func passwordOr(v, prompt string, out io.Writer) (string, error) {
	if v != "" {
		return v, nil
	}
	pw, err := getPassword(prompt, out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// withClient opens a client, runs fn under the request timeout and closes
// the client.
func (a *App) withClient(ctx context.Context, fn func(ctx context.Context, c client.Client) error) error {
	c, err := a.newClient(a.config.ServerEndpointAddr, a.config.AccessToken)
	if err != nil {
		return fmt.Errorf("connect %s: %w", a.config.ServerEndpointAddr, err)
	}
	defer func() { _ = c.Close() }()

	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	return fn(ctx, c)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
