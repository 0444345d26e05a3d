package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// getSimpleText, getRequiredText and getPassword are swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getRequiredText = GetRequiredText
	getPassword     = GetPassword
)

// Register prompts for a new seller and creates it.
func (a *App) Register(ctx context.Context) error {
	var in models.SellerInput
	var err error

	if in.FirstName, err = getRequiredText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if in.LastName, err = getRequiredText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if in.Email, err = getRequiredText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if in.Password, err = getPassword(a.out); err != nil {
		return err
	}

	s, err := a.sessions.Register(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Registered seller #%d %s\n", s.ID, s.Email)
	return nil
}

// Login prompts for credentials and caches the issued token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ctx, ModeOffline)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	a.setEmail(sess.Email)
	a.printf("Logged in as %s\n", sess.Email)
	return nil
}

// Logout forgets the cached token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	a.setEmail("")
	a.printf("Logged out\n")
	return nil
}
