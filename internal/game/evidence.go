package game

import (
	"strings"

	"github.com/robalobadob/wordle/apps/wordle-helper/internal/predicate"
)

// Evidence folds every guess and its marks into filter evidence:
//   - Correct: '_' everywhere except positions ever marked hit.
//   - Wrong:   each letter repeated by the most hit+present copies any single
//     guess showed, i.e. the minimum number of times the answer contains it.
//   - Invalid: letters that were marked miss and never hit or present.
//
// Letters appear in first-seen order. A game with no guesses has no evidence.
// The answer itself always satisfies the result.
func (g *Game) Evidence() predicate.Evidence {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.Guesses) == 0 {
		return predicate.Evidence{}
	}

	template := []rune(strings.Repeat(string(predicate.Placeholder), g.Cols))
	need := map[rune]int{}
	found := map[rune]bool{}
	missed := map[rune]bool{}
	var order []rune

	for gi, guess := range g.Guesses {
		marks := g.Marks[gi]
		count := map[rune]int{}
		i := 0
		for _, r := range guess {
			if !found[r] && !missed[r] {
				order = append(order, r)
			}
			switch marks[i] {
			case MarkHit:
				if i < len(template) {
					template[i] = r
				}
				count[r]++
				found[r] = true
			case MarkPresent:
				count[r]++
				found[r] = true
			default:
				missed[r] = true
			}
			i++
		}
		for r, n := range count {
			if n > need[r] {
				need[r] = n
			}
		}
	}

	var wrong, invalid strings.Builder
	for _, r := range order {
		if n := need[r]; n > 0 {
			wrong.WriteString(strings.Repeat(string(r), n))
		} else if missed[r] && !found[r] {
			invalid.WriteRune(r)
		}
	}

	return predicate.Evidence{
		Correct: predicate.Some(string(template)),
		Wrong:   predicate.Some(wrong.String()),
		Invalid: predicate.Some(invalid.String()),
	}
}
