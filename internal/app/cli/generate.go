package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/genlog"
)

// Generate prompts for a description and an optional size and runs one
// generation. A size left empty falls back to the provider default.
func (c *CLI) Generate(ctx context.Context) error {
	prompt, err := getSimpleText(c.reader, "Describe the image", os.Stdout)
	if err != nil {
		return err
	}

	size, err := getSimpleText(c.reader, "Size (press Enter for 1024x1024)", os.Stdout)
	if err != nil {
		return err
	}

	fmt.Println("Generating...")
	res, err := c.app.Generator.Generate(ctx, prompt, size)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotAuthenticated):
			fmt.Println("Please login first.")
		case errors.Is(err, common.ErrEmptyPrompt):
			fmt.Println("The description must not be empty.")
		case errors.Is(err, common.ErrInsufficientCredits):
			fmt.Println("You are out of credits.")
		case errors.Is(err, common.ErrMaintenance):
			fmt.Println("The service is under maintenance, try again later.")
		case errors.Is(err, common.ErrProviderFailure):
			fmt.Printf("Generation failed: %s\n", err.Error())
		default:
			fmt.Printf("Error: %s\n", err.Error())
		}
		c.refresh(ctx)
		return err
	}

	c.current = res.Account
	fmt.Printf("Done! %d bytes of %s, %d credits left.\n",
		len(res.Image.Data), res.Image.MediaType, res.Account.Credits)
	if res.ArtifactURL != "" {
		fmt.Printf("Saved to %s\n", res.ArtifactURL)
	}
	return nil
}

// History prints the account's generation attempts, most recent first.
func (c *CLI) History(ctx context.Context) error {
	entries, err := c.app.Generator.History(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			fmt.Println("Please login first.")
		} else {
			fmt.Printf("Error: %s\n", err.Error())
		}
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No generations yet.")
		return nil
	}

	for _, e := range entries {
		marker := "ok"
		if e.Status == genlog.StatusFailed {
			marker = "failed"
		}
		fmt.Printf("%s  %-6s  %-9s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), marker, e.Size, e.Prompt)
	}
	return nil
}

// Balance prints the live credit balance.
func (c *CLI) Balance(ctx context.Context) error {
	acct, err := c.app.Sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotAuthenticated) {
			fmt.Println("Please login first.")
		} else {
			fmt.Printf("Error: %s\n", err.Error())
		}
		return err
	}

	c.current = acct
	fmt.Printf("%d credits\n", acct.Credits)
	return nil
}
