// Package game holds the identifiers and summary types shared across the
// move processor, the session registry, and the transport layer, without
// importing any of them - avoiding the import cycle the full Game type
// would otherwise create.
package game

// ID identifies a single game for the lifetime of the server.
type ID int

// Config configures the rules a new game is created with.
type Config struct {
	// MaxPlayers is the number of seats a game has; StartGame requires at
	// least two filled seats.
	MaxPlayers int
	// Alphabet names the tile distribution ("english" or "polish") new
	// games of this config are dealt from.
	Alphabet string
}
