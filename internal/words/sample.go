package words

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrSampleTooLarge is returned when more distinct entries are requested
// than the list holds.
var ErrSampleTooLarge = errors.New("words: sample larger than population")

// Random returns one uniformly chosen entry of list. rng may be nil, in
// which case the global source is used.
func Random(list []string, rng *rand.Rand) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyList
	}
	return list[intN(rng, len(list))], nil
}

// Sample returns n entries of list drawn uniformly without replacement.
// Positions, not values, are drawn, so a list with duplicates can yield
// equal strings. The size check happens before any drawing.
func Sample(list []string, n int, rng *rand.Rand) ([]string, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("words: negative sample size %d", n)
	case n == 0:
		return []string{}, nil
	case len(list) == 0:
		return nil, ErrEmptyList
	case n > len(list):
		return nil, fmt.Errorf("%w: want %d, have %d", ErrSampleTooLarge, n, len(list))
	}

	// Partial Fisher-Yates over indices; the first n slots are the sample.
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		j := i + intN(rng, len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = list[idx[i]]
	}
	return out, nil
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
