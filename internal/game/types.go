// internal/game/types.go
//
// Core type definitions for the practice game engine.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Game: state for a single in-progress or finished game.

package game

import "sync"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist in the answer (or not that many times).
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Game holds the state of a single practice game. Games live in memory only.
//
// ID, Answer, Rows and Cols are fixed at creation. The remaining fields are
// guarded by mu; ApplyGuess, State and Evidence are safe for concurrent use.
type Game struct {
	ID       string   // Unique game identifier (UUID).
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed (typically 6).
	Cols     int      // Number of letters per word (length of Answer).
	Guesses  []string // List of guesses made so far (lowercased).
	Marks    [][]Mark // Marks[i] scores Guesses[i].
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	mu sync.Mutex
}
