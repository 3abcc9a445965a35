package cli

import (
	"context"
	"os"
)

// Register prompts for credentials and creates an account. On success the
// session is persisted and the user is immediately logged in.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if _, err := a.auth.Register(ctx, email, password); err != nil {
		printlnFn(a.auth.Err())
		return err
	}
	printlnFn("Registration successful, you are now logged in")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if _, err := a.auth.Login(ctx, email, password); err != nil {
		printlnFn(a.auth.Err())
		return err
	}
	printlnFn("Login successful")
	return nil
}

// Logout clears the persisted session. Other running instances are not
// notified; their token keeps working until the server rejects it.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	printlnFn("Logged out")
	return nil
}
