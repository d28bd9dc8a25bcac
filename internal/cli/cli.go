package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kishore934612-boop/ManagerX-2.0/internal/app"
)

// ErrLocked is returned by Run when the biometric gate refuses access.
var ErrLocked = errors.New("access denied")

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

type CLI struct {
	app    *app.App
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func New(a *app.App, in io.Reader, out io.Writer) *CLI {
	return &CLI{app: a, reader: bufio.NewReader(in), out: out, now: time.Now}
}

// Run passes the biometric gate, if enabled, and then serves commands until
// the input ends or the user exits.
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Welcome to ManagerX (type 'help' for commands)")

	if !c.app.Preferences.AuthenticateWithBiometric(ctx) {
		if err := takeErr(c.app.Preferences); err != nil {
			return fmt.Errorf("%w: %w", ErrLocked, err)
		}
		return ErrLocked
	}

	if u := c.app.Session.User(); u != nil {
		fmt.Fprintf(c.out, "Signed in as %s\n", u.Email)
	}

	runREPL(ctx, c, c.status, c.reader, c.out)
	return nil
}

func (c *CLI) isLoggedIn() bool {
	return c.app.Session.IsAuthenticated()
}

func (c *CLI) status() string {
	if u := c.app.Session.User(); u != nil {
		return fmt.Sprintf(" (%s)", u.Email)
	}
	return ""
}

func (c *CLI) userID() string {
	if u := c.app.Session.User(); u != nil {
		return u.ID
	}
	return ""
}

// editField prompts for a new value of a field, showing cur. An empty answer
// keeps cur; "-" clears the field when clearable. changed reports whether
// the field is to be replaced by value.
func (c *CLI) editField(label, cur string, clearable bool) (value string, changed bool, err error) {
	prompt := fmt.Sprintf("%s [%s]", label, cur)
	if clearable {
		prompt += " (- to clear)"
	}
	v, err := getSimpleText(c.reader, prompt, c.out)
	if err != nil {
		return "", false, err
	}
	switch {
	case v == "" || v == cur:
		return cur, false, nil
	case v == "-" && clearable:
		return "", true, nil
	}
	return v, true, nil
}

type errorer interface {
	Err() error
	ClearError()
}

// takeErr returns and clears the error recorded by a service.
func takeErr(s errorer) error {
	err := s.Err()
	if err != nil {
		s.ClearError()
	}
	return err
}

// resolve maps a row reference to an id. ref is either a 1-based position in
// rows or an id (or unique id prefix) present in rows.
func resolve(ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("missing row number or id")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("no row %d", n)
		}
		return ids[n-1], nil
	}

	var match string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id %q", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("unknown id %q", ref)
	}
	return match, nil
}
