package postgres

import (
	"context"

	"github.com/jacobpatterson1549/selene-bananas/db"
)

// LexiconBackend checks word validity against a dictionary table, for
// deployments that want the lexicon to be updatable without a server
// restart. It satisfies engine.Lexicon.
type LexiconBackend struct {
	db.Database
	// Ctx is used for the Check calls the engine.Lexicon interface makes
	// without a context of its own.
	Ctx context.Context
}

// NewLexiconBackend creates a backend that checks words against the
// dictionary table.
func NewLexiconBackend(ctx context.Context, d db.Database) LexiconBackend {
	return LexiconBackend{Database: d, Ctx: ctx}
}

// Check reports whether word exists in the dictionary table.
func (lb LexiconBackend) Check(word string) bool {
	cols := []string{"exists"}
	q := db.NewQueryFunction("word_exists", cols, word)
	row := lb.Query(lb.Ctx, q)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false
	}
	return exists
}
