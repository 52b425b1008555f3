package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bishnutech/pixelforge/internal/common"
)

func (c *CLI) requireAdmin() error {
	if !c.isAdmin() {
		fmt.Println("This command requires an admin account.")
		return common.ErrNotAuthenticated
	}
	return nil
}

// Users lists every account in creation order.
func (c *CLI) Users(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	all, err := c.app.Accounts.List(ctx)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return err
	}

	for _, a := range all {
		fmt.Printf("%-30s  %-12s  %6d cr  %s\n", a.Email, a.Role, a.Credits, a.Name)
	}
	return nil
}

// SetCredits prompts for an email and a value and overrides that account's
// balance.
func (c *CLI) SetCredits(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	email, err := getSimpleText(c.reader, "Account email", os.Stdout)
	if err != nil {
		return err
	}

	raw, err := getSimpleText(c.reader, "New credit balance", os.Stdout)
	if err != nil {
		return err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Println("The balance must be a whole number.")
		return err
	}

	acct, err := c.app.Accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			fmt.Println("No account with that email.")
		} else {
			fmt.Printf("Error: %s\n", err.Error())
		}
		return err
	}

	updated, err := c.app.Accounts.SetCredits(ctx, acct.ID, value)
	if err != nil {
		if errors.Is(err, common.ErrNegativeCredits) {
			fmt.Println("The balance must not be negative.")
		} else {
			fmt.Printf("Error: %s\n", err.Error())
		}
		return err
	}

	fmt.Printf("%s now has %d credits.\n", updated.Email, updated.Credits)
	return nil
}

// Maintenance prompts for "on" or "off" and flips the maintenance switch.
func (c *CLI) Maintenance(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	raw, err := getSimpleText(c.reader, "Maintenance mode (on/off)", os.Stdout)
	if err != nil {
		return err
	}

	var on bool
	switch raw {
	case "on":
		on = true
	case "off":
		on = false
	default:
		fmt.Println("Answer 'on' or 'off'.")
		return fmt.Errorf("invalid maintenance value: %q", raw)
	}

	cur, err := c.app.Settings.SetMaintenanceMode(ctx, on)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return err
	}

	if cur.MaintenanceMode {
		fmt.Println("Maintenance mode is ON: only admins can sign in or generate.")
	} else {
		fmt.Println("Maintenance mode is off.")
	}
	return nil
}

// SignupCredits prompts for the grant applied to future signups.
func (c *CLI) SignupCredits(ctx context.Context) error {
	if err := c.requireAdmin(); err != nil {
		return err
	}

	raw, err := getSimpleText(c.reader, "Credits for new signups", os.Stdout)
	if err != nil {
		return err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Println("The grant must be a whole number.")
		return err
	}

	cur, err := c.app.Settings.SetSignupCredits(ctx, value)
	if err != nil {
		if errors.Is(err, common.ErrNegativeCredits) {
			fmt.Println("The grant must not be negative.")
		} else {
			fmt.Printf("Error: %s\n", err.Error())
		}
		return err
	}

	fmt.Printf("New signups will start with %d credits.\n", cur.SignupCredits)
	return nil
}
