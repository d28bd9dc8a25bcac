// Package biometric provides the device-owner challenge used to gate the
// app. On a terminal the "hardware" is an interactive TTY and the enrolled
// credential is a device PIN, read without echo and checked against a bcrypt
// hash.
package biometric

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// MaxAttempts bounds the number of PIN entries per challenge.
const MaxAttempts = 3

// HashPIN returns the bcrypt hash stored as the enrolled credential.
func HashPIN(pin string) ([]byte, error) {
	if pin == "" {
		return nil, errors.New("empty pin")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	return h, nil
}

type TerminalAuthenticator struct {
	fd      int
	out     io.Writer
	pinHash []byte

	// test seams
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewTerminalAuthenticator challenges on stdin. pinHash may be empty, in
// which case nothing is enrolled.
func NewTerminalAuthenticator(out io.Writer, pinHash []byte) *TerminalAuthenticator {
	return &TerminalAuthenticator{
		fd:           int(os.Stdin.Fd()),
		out:          out,
		pinHash:      pinHash,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

func (a *TerminalAuthenticator) HasHardware(context.Context) (bool, error) {
	return a.isTerminal(a.fd), nil
}

func (a *TerminalAuthenticator) IsEnrolled(context.Context) (bool, error) {
	return len(a.pinHash) > 0, nil
}

// Authenticate prompts for the PIN up to MaxAttempts times. A wrong PIN is
// reported as (false, nil); read errors are returned.
func (a *TerminalAuthenticator) Authenticate(ctx context.Context, prompt string) (bool, error) {
	if len(a.pinHash) == 0 {
		return false, nil
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		fmt.Fprintf(a.out, "%s\nPIN: ", prompt)
		pin, err := a.readPassword(a.fd)
		fmt.Fprintln(a.out)
		if err != nil {
			return false, fmt.Errorf("read pin: %w", err)
		}

		err = bcrypt.CompareHashAndPassword(a.pinHash, pin)
		clear(pin)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, fmt.Errorf("check pin: %w", err)
		}
		if attempt < MaxAttempts {
			fmt.Fprintln(a.out, "Wrong PIN, try again.")
		}
	}
	return false, nil
}
