// Package suggest computes "did you mean" candidates for UnknownArgument
// and InvalidSubcommand errors, via a small unexported Levenshtein
// implementation.
package suggest

import "strings"

// Best returns the candidates from options whose edit distance to input
// is within threshold, closest first. A threshold of 0 disables
// suggestions entirely.
func Best(input string, options []string, threshold int) []string {
	if threshold <= 0 || input == "" || len(options) == 0 {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	lower := strings.ToLower(input)
	for _, opt := range options {
		d := distance(lower, strings.ToLower(opt))
		if d <= threshold {
			candidates = append(candidates, scored{opt, d})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	// stable insertion sort by distance; candidate counts are tiny
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].dist < candidates[j-1].dist; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// distance computes the Levenshtein edit distance between a and b.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}
