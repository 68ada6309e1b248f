// internal/words/score.go
//
// Wordle-style evaluation of a guess against an answer.

package words

// Score compares guess vs. answer and returns a slice of ints:
//   0 = miss (letter not in answer)
//   1 = present (letter in answer, wrong position)
//   2 = hit (letter in correct position)
//
// Implements the standard two-pass Wordle scoring:
//   Pass 1: mark exact matches (hits) and count remaining letters.
//   Pass 2: for non-hits, mark present if unused letters remain.
//
// Letters are runes. A guess of a different length scores all misses.
func Score(guess, answer string) []int {
	a, g := []rune(answer), []rune(guess)
	n := len(a)
	out := make([]int, n)
	if len(g) != n {
		return out
	}

	// Pass 1: hits and frequency counts
	freq := make(map[rune]int, n)
	for i := 0; i < n; i++ {
		if g[i] == a[i] {
			out[i] = 2 // hit
		} else {
			freq[a[i]]++
		}
	}

	// Pass 2: mark presents where applicable
	for i := 0; i < n; i++ {
		if out[i] == 2 {
			continue
		}
		if freq[g[i]] > 0 {
			out[i] = 1 // present
			freq[g[i]]--
		}
	}
	return out
}
