package predicate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny lists from being split across goroutines.
const minChunk = 256

// Filter returns the words that match p, in their original order.
// words is never modified.
func (p *Predicate) Filter(words []string) []string {
	out := make([]string, 0, len(words)/4)
	for _, w := range words {
		if p.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

// Count returns how many words match p.
func (p *Predicate) Count(words []string) int {
	n := 0
	for _, w := range words {
		if p.Matches(w) {
			n++
		}
	}
	return n
}

// FilterContext is Filter spread over up to workers goroutines. Each worker
// owns a contiguous chunk of words and its own result slice, and the chunks
// are joined in order, so the output is identical to Filter's.
//
// It returns ctx.Err() if ctx is cancelled before every chunk finishes.
func (p *Predicate) FilterContext(ctx context.Context, words []string, workers int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	size := (len(words) + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}
	if len(words) <= size {
		return p.Filter(words), nil
	}

	chunks := make([][]string, (len(words)+size-1)/size)
	eg, egCtx := errgroup.WithContext(ctx)
	for c := range chunks {
		lo := c * size
		hi := min(lo+size, len(words))
		eg.Go(func() error {
			part := make([]string, 0, (hi-lo)/4)
			for i, w := range words[lo:hi] {
				if i%minChunk == 0 {
					if err := egCtx.Err(); err != nil {
						return err
					}
				}
				if p.Matches(w) {
					part = append(part, w)
				}
			}
			chunks[c] = part
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range chunks {
		total += len(part)
	}
	out := make([]string, 0, total)
	for _, part := range chunks {
		out = append(out, part...)
	}
	return out, nil
}
