// internal/game/engine.go
//
// Practice game engine for a single session.
// Responsibilities:
//   - Create new games (6 rows, columns = answer length).
//   - Validate and apply guesses (length, known word list).
//   - Score guesses using the classic two-pass Wordle algorithm.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - The word list is provided by the words package and must be loaded.
//   - Evidence() (evidence.go) turns the marks into filter evidence.
package game

import (
	"errors"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/words"
)

const defaultRows = 6

// Sentinel errors returned by New and ApplyGuess.
var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrUnknownWord  = errors.New("not in word list")
)

// New constructs a new game instance.
// If withAnswer is empty, a random answer is chosen from the loaded list.
func New(withAnswer string, rng *rand.Rand) (*Game, error) {
	ans := strings.ToLower(strings.TrimSpace(withAnswer))
	if ans == "" {
		var err error
		if ans, err = words.Random(words.All(), rng); err != nil {
			return nil, err
		}
	}
	return &Game{
		ID:      uuid.NewString(),
		Answer:  ans,
		Rows:    defaultRows,
		Cols:    utf8.RuneCountInString(ans),
		Guesses: []string{},
		Marks:   [][]Mark{},
	}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the per-letter marks, the new state string ("playing"/"won"/"lost"), or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters.
//   - Guess must be present in the loaded word list.
//
// State transitions:
//   - If all tiles are Hit → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) ([]Mark, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Finished {
		return nil, g.state(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if utf8.RuneCountInString(guess) != g.Cols {
		return nil, g.state(), ErrInvalidGuess
	}
	if !words.IsKnown(guess) {
		return nil, g.state(), ErrUnknownWord
	}

	marks := scoreGuess(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)
	g.Marks = append(g.Marks, marks)

	if allHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.state(), nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// scoreGuess maps words.Score's 0/1/2 result onto marks.
func scoreGuess(answer, guess string) []Mark {
	scores := words.Score(guess, answer)
	res := make([]Mark, len(scores))
	for i, s := range scores {
		switch s {
		case 2:
			res[i] = MarkHit
		case 1:
			res[i] = MarkPresent
		default:
			res[i] = MarkMiss
		}
	}
	return res
}

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}
