package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real CLI type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Generate(ctx context.Context) error
	History(ctx context.Context) error
	Balance(ctx context.Context) error
	Users(ctx context.Context) error
	SetCredits(ctx context.Context) error
	Maintenance(ctx context.Context) error
	SignupCredits(ctx context.Context) error
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print their
// own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pf> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn("Available commands: (g)enerate, history, balance, users, setcredits, maintenance, signupcredits, logout, exit")
			case a.isLoggedIn():
				printlnFn("Available commands: (g)enerate, history, balance, logout, exit")
			default:
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "g", "generate":
			_ = a.Generate(ctx)

		case "history":
			_ = a.History(ctx)

		case "balance":
			_ = a.Balance(ctx)

		case "users":
			_ = a.Users(ctx)

		case "setcredits":
			_ = a.SetCredits(ctx)

		case "maintenance":
			_ = a.Maintenance(ctx)

		case "signupcredits":
			_ = a.SignupCredits(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
