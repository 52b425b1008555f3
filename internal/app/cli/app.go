// Package cli is the interactive shell around the service layer.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/bishnutech/pixelforge/internal/accounts"
	"github.com/bishnutech/pixelforge/internal/app"
)

type CLI struct {
	app    *app.App
	reader *bufio.Reader
	// current mirrors the persisted session for prompt display; the services
	// re-resolve it on every operation.
	current *accounts.Account
}

func New(a *app.App) *CLI {
	return &CLI{app: a, reader: bufio.NewReader(os.Stdin)}
}

// Run restores a persisted session if one exists and enters the REPL.
func (c *CLI) Run(ctx context.Context) {
	fmt.Println("PixelForge CLI (type 'help' for commands)")

	if acct, err := c.app.Sessions.Current(ctx); err == nil {
		c.current = acct
		fmt.Printf("Resuming session for %s\n", acct.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, c, c.status, scanner)
}

func (c *CLI) isLoggedIn() bool {
	return c.current != nil
}

func (c *CLI) isAdmin() bool {
	return c.current != nil && c.current.IsAdmin()
}

func (c *CLI) status() string {
	if c.current == nil {
		return ""
	}
	return fmt.Sprintf("(%s, %d cr)", c.current.Email, c.current.Credits)
}

// refresh re-reads the session so the prompt shows the live balance.
func (c *CLI) refresh(ctx context.Context) {
	acct, err := c.app.Sessions.Current(ctx)
	if err != nil {
		c.current = nil
		return
	}
	c.current = acct
}
