package internal

import (
	"iter"
)

// IterPairs iterates over consecutive non-overlapping pairs of a slice,
// yielding the index of each pair's first element. A trailing odd element
// is not yielded.
func IterPairs[T any](s []T) iter.Seq2[int, [2]T] {
	return func(yield func(int, [2]T) bool) {
		for n := 0; n+1 < len(s); n += 2 {
			if !yield(n, [2]T{s[n], s[n+1]}) {
				return // Stop if the consumer stops
			}
		}
	}
}
