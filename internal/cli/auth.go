package cli

import (
	"context"
	"fmt"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/common"
)

// Register prompts for email, password and an optional display name and
// signs the new account in.
func (c *CLI) Register(ctx context.Context) error {
	email, err := getSimpleText(c.reader, "Enter email", c.out)
	if err != nil {
		return err
	}
	password, err := getPassword(c.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	name, err := getSimpleText(c.reader, "Display name (optional)", c.out)
	if err != nil {
		return err
	}

	c.app.Session.Register(ctx, email, string(password), name)
	if err := takeErr(c.app.Session); err != nil {
		return err
	}
	return c.welcome(ctx)
}

// Login prompts for credentials and loads the user's data on success.
func (c *CLI) Login(ctx context.Context) error {
	email, err := getSimpleText(c.reader, "Enter email", c.out)
	if err != nil {
		return err
	}
	password, err := getPassword(c.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	c.app.Session.Login(ctx, email, string(password))
	if err := takeErr(c.app.Session); err != nil {
		return err
	}
	return c.welcome(ctx)
}

func (c *CLI) welcome(ctx context.Context) error {
	c.app.LoadUserData(ctx)

	u := c.app.Session.User()
	if u == nil {
		return nil
	}
	name := u.DisplayName
	if name == "" {
		name = u.Email
	}
	fmt.Fprintln(c.out, okColor.Sprintf("Welcome, %s!", name))

	if err := takeErr(c.app.Tasks); err != nil {
		return err
	}
	return takeErr(c.app.Notes)
}

func (c *CLI) Logout(ctx context.Context) error {
	c.app.SignOut(ctx)
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}
