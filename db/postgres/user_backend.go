// Package postgres implements the user.Backend interface by calling stored
// functions in a postgres database.
package postgres

import (
	"context"
	"fmt"

	"github.com/jacobpatterson1549/selene-bananas/db"
	"github.com/jacobpatterson1549/selene-bananas/db/user"
)

// UserBackend is a backend manager for the users table.
type UserBackend struct {
	db.Database
}

// NewUserBackend creates a backend manager for users.
func NewUserBackend(d db.Database) UserBackend {
	return UserBackend{Database: d}
}

// Create adds the username/password pair.
func (ub UserBackend) Create(ctx context.Context, u user.User) error {
	q := db.NewExecFunction("user_create", u.Username, u.Password)
	if err := ub.Exec(ctx, q); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Read gets the username, password, and points for the user.
func (ub UserBackend) Read(ctx context.Context, u user.User) (*user.User, error) {
	cols := []string{"username", "password", "points"}
	q := db.NewQueryFunction("user_read", cols, u.Username)
	row := ub.Query(ctx, q)
	var u2 user.User
	if err := row.Scan(&u2.Username, &u2.Password, &u2.Points); err != nil {
		if err == db.ErrNoRows {
			return nil, user.ErrIncorrectLogin
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}
	return &u2, nil
}

// UpdatePassword sets the password of a user.
func (ub UserBackend) UpdatePassword(ctx context.Context, u user.User) error {
	q := db.NewExecFunction("user_update_password", u.Username, u.Password)
	if err := ub.Exec(ctx, q); err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// UpdatePointsIncrement increments the points for multiple users by the amount defined in the map.
func (ub UserBackend) UpdatePointsIncrement(ctx context.Context, usernamePoints map[string]int) error {
	queries := make([]db.Query, 0, len(usernamePoints))
	for username, points := range usernamePoints {
		queries = append(queries, db.NewExecFunction("user_update_points_increment", username, points))
	}
	if err := ub.Exec(ctx, queries...); err != nil {
		return fmt.Errorf("incrementing user points: %w", err)
	}
	return nil
}

// Delete removes a user.
func (ub UserBackend) Delete(ctx context.Context, u user.User) error {
	q := db.NewExecFunction("user_delete", u.Username)
	if err := ub.Exec(ctx, q); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
