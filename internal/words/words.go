// internal/words/words.go
//
// Word list management.
//
// Responsibilities:
//   - Load the candidate list from a configured file, or fall back to the
//     embedded five-letter list.
//   - Keep a set for quick membership checks.
//   - Supply Random, Sample, IsKnown and Stats helpers.
//
// Initialization behavior (Init):
//   1. If path is non-empty, read one word per line from that file.
//   2. Otherwise use assets.FiveLetterWords().
//
// Words are trimmed and lowercased; blank lines and '#' comments are dropped.
// No length filter is applied: the predicate accepts mixed-length words.
// Source order and duplicates are preserved in All().

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-helper/assets"
)

// ErrEmptyList is returned when a word list has no usable entries.
var ErrEmptyList = errors.New("words: list is empty")

var (
	initOnce   sync.Once
	all        []string            // source order, duplicates kept
	knownSet   map[string]struct{} // all as a set
	initialErr error
)

// Init loads the word list exactly once. Later calls return the first
// call's error, whatever path they pass.
func Init(path string) error {
	initOnce.Do(func() {
		list, err := Load(path)
		if err != nil {
			initialErr = err
			return
		}
		all = list
		knownSet = toSet(list)
		log.Debug().Str("source", sourceName(path)).Int("words", len(all)).Msg("word list loaded")
	})
	return initialErr
}

// Load reads a word list from path, or the embedded list when path is "".
func Load(path string) ([]string, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.FiveLetterWords()
	} else {
		list, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", sourceName(path), err)
	}
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

func sourceName(path string) string {
	if path == "" {
		return "embedded:" + assets.FiveLetterFile
	}
	return path
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// All returns the loaded list. Callers must not modify it.
func All() []string {
	return all
}

// IsKnown reports whether w is in the loaded list.
func IsKnown(w string) bool {
	_, ok := knownSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Stats returns (entries in source order, distinct entries).
func Stats() (total int, distinct int) {
	return len(all), len(knownSet)
}
