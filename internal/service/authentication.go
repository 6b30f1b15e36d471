// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"personal-blog/internal/database"
	"personal-blog/internal/model"
	"personal-blog/internal/store"
)

var (
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrUnknownAccount     = errors.New("no account for that email")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	getUserByEmail = store.GetUserByEmail
	createUser     = store.CreateUser
)

// NormalizeEmail lower-cases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser creates an account with a hashed password. An email that is
// already registered yields ErrDuplicateAccount and a password over
// MaxPasswordBytes yields ErrPasswordTooLong; no row is written in either case.
func RegisterUser(ctx context.Context, db database.DB, name, email, password string) (*model.User, error) {
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	email = NormalizeEmail(email)

	_, err := getUserByEmail(ctx, db, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateAccount
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("RegisterUser: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("RegisterUser: hash password: %w", err)
	}

	user, err := createUser(ctx, db, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrDuplicate) {
		// lost a race with a concurrent registration
		return nil, ErrDuplicateAccount
	}
	if err != nil {
		return nil, fmt.Errorf("RegisterUser: %w", err)
	}
	return user, nil
}

// AuthenticateUser checks password against the user's stored hash.
func AuthenticateUser(user model.User, password string) (*model.User, error) {
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// LogIn resolves email to a user and verifies the password.
func LogIn(ctx context.Context, db database.DB, email, password string) (*model.User, error) {
	user, err := getUserByEmail(ctx, db, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("LogIn: %w", err)
	}
	return AuthenticateUser(*user, password)
}
