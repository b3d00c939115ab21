package component

import (
	"context"

	"github.com/Rrens/code-search-web/internal/domain"
)

// LoginForm is the state behind the login page
type LoginForm struct {
	Notices

	Username string
}

// Submit signs the browser in. The password is never kept on the form.
func (f *LoginForm) Submit(ctx context.Context, auth AuthAPI, ls domain.LocalStorage, username, password string) bool {
	f.Username = username
	if _, err := auth.Login(ctx, ls, username, password); err != nil {
		f.fail("Login failed", err)
		return false
	}
	return true
}

// RegisterForm is the state behind the registration page
type RegisterForm struct {
	Notices

	Username string
	Email    string
	FullName string
}

// Submit creates the account
func (f *RegisterForm) Submit(ctx context.Context, auth AuthAPI, input domain.RegisterRequest) bool {
	f.Username = input.Username
	f.Email = input.Email
	f.FullName = input.FullName

	if _, err := auth.Register(ctx, input); err != nil {
		f.fail("Registration failed", err)
		return false
	}
	return true
}

// Registered greets a browser arriving from a successful registration
func (f *LoginForm) Registered(username string) {
	f.Username = username
	f.succeed("Account created. You can sign in now.")
}
