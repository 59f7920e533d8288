package user

import (
	"context"
	"fmt"
)

type (
	// Backend stores and retrieves users, without regard for password hashing.
	// Postgres, MongoDB, and Firestore backends all satisfy this interface.
	Backend interface {
		// Create adds a user.
		Create(ctx context.Context, u User) error
		// Read gets the user, matched by username.
		Read(ctx context.Context, u User) (*User, error)
		// UpdatePassword sets the password of a user.
		UpdatePassword(ctx context.Context, u User) error
		// UpdatePointsIncrement increments the points for multiple users by the amount defined in the map.
		UpdatePointsIncrement(ctx context.Context, usernamePoints map[string]int) error
		// Delete removes a user.
		Delete(ctx context.Context, u User) error
	}

	// passwordHandler hashes and checks passwords before they reach a Backend.
	passwordHandler interface {
		Hash(password string) ([]byte, error)
		IsCorrect(hashedPassword []byte, password string) (bool, error)
	}

	// Dao hashes/checks passwords around a Backend's storage operations.
	Dao struct {
		backend Backend
		ph      passwordHandler
	}
)

// ErrIncorrectLogin should be returned if a login attempt fails because the credentials are invalid.
var ErrIncorrectLogin error = fmt.Errorf("incorrect username/password")

// NewDao creates a Dao that hashes passwords with ph before storing them in backend.
func NewDao(backend Backend, ph passwordHandler) (*Dao, error) {
	switch {
	case backend == nil:
		return nil, fmt.Errorf("creating user dao: backend required")
	case ph == nil:
		return nil, fmt.Errorf("creating user dao: password handler required")
	}
	d := Dao{
		backend: backend,
		ph:      ph,
	}
	return &d, nil
}

// Create adds a user, hashing its password first.
func (d Dao) Create(ctx context.Context, u User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	hashedPassword, err := d.ph.Hash(u.Password)
	if err != nil {
		return fmt.Errorf("creating user: hashing password: %w", err)
	}
	u.Password = string(hashedPassword)
	if err := d.backend.Create(ctx, u); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Login ensures the username/password combination is valid and returns all information about the user.
func (d Dao) Login(ctx context.Context, u User) (*User, error) {
	stored, err := d.backend.Read(ctx, User{Username: u.Username})
	if err != nil {
		if err == ErrIncorrectLogin {
			return nil, ErrIncorrectLogin
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}
	isCorrect, err := d.ph.IsCorrect([]byte(stored.Password), u.Password)
	switch {
	case err != nil:
		return nil, fmt.Errorf("checking password: %w", err)
	case !isCorrect:
		return nil, ErrIncorrectLogin
	}
	return stored, nil
}

// UpdatePassword sets the password of a user, checking the old password first.
func (d Dao) UpdatePassword(ctx context.Context, u User, newPassword string) error {
	if _, err := d.Login(ctx, u); err != nil {
		return fmt.Errorf("checking password: %w", err)
	}
	u2 := User{Username: u.Username, Password: newPassword}
	if err := u2.validatePassword(); err != nil {
		return err
	}
	hashedPassword, err := d.ph.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("updating user password: hashing password: %w", err)
	}
	u2.Password = string(hashedPassword)
	if err := d.backend.UpdatePassword(ctx, u2); err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// UpdatePointsIncrement increments the points for multiple users by the amount defined in the map.
func (d Dao) UpdatePointsIncrement(ctx context.Context, usernamePoints map[string]int) error {
	if err := d.backend.UpdatePointsIncrement(ctx, usernamePoints); err != nil {
		return fmt.Errorf("incrementing user points: %w", err)
	}
	return nil
}

// Delete removes a user, checking the password first.
func (d Dao) Delete(ctx context.Context, u User) error {
	if _, err := d.Login(ctx, u); err != nil {
		return fmt.Errorf("checking password: %w", err)
	}
	if err := d.backend.Delete(ctx, u); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
