package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bishnutech/pixelforge/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for a name, email and password and creates a fresh account
// with the configured starting grant. The new account is signed in.
func (c *CLI) Signup(ctx context.Context) error {
	name, err := getSimpleText(c.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(c.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acct, err := c.app.Sessions.Signup(ctx, name, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateEmail):
			fmt.Println("An account with this email already exists.")
		case errors.Is(err, common.ErrMaintenance):
			fmt.Println("The service is under maintenance, try again later.")
		default:
			fmt.Printf("Signup failed: %s\n", err.Error())
		}
		return err
	}

	c.current = acct
	fmt.Printf("Welcome, %s! You have %d credits.\n", acct.Name, acct.Credits)
	return nil
}

// Login prompts for credentials and authenticates against the ledger.
func (c *CLI) Login(ctx context.Context) error {
	email, err := getSimpleText(c.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acct, err := c.app.Sessions.Login(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			fmt.Println("Invalid email or password.")
		case errors.Is(err, common.ErrMaintenance):
			fmt.Println("The service is under maintenance, try again later.")
		default:
			fmt.Printf("Login failed: %s\n", err.Error())
		}
		return err
	}

	c.current = acct
	fmt.Printf("Logged in as %s (%d credits)\n", acct.Email, acct.Credits)
	return nil
}

// Logout clears the persisted session.
func (c *CLI) Logout(ctx context.Context) error {
	if err := c.app.Sessions.Logout(ctx); err != nil {
		fmt.Printf("Logout failed: %s\n", err.Error())
		return err
	}
	c.current = nil
	fmt.Println("Logged out")
	return nil
}
