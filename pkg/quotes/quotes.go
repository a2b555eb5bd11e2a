// Package quotes supplies the motivational quote shown alongside a roadmap.
package quotes

import (
	"math/rand/v2"
)

//nolint:gochecknoglobals // Fixed quote list
var quotes = []string{
	"Believe in yourself – you are capable of amazing things.",
	"Success is not final, failure is not fatal: It is the courage to continue that counts.",
	"Your journey is unique. Embrace it with pride!",
	"Dream big, start small, act now.",
	"Every expert was once a beginner.",
}

// All returns a copy of every quote.
func All() (all []string) {
	all = make([]string, len(quotes))
	copy(all, quotes)
	return all
}

// Pick returns a uniformly chosen quote. A nil r uses the global source.
func Pick(r *rand.Rand) (quote string) {
	if r == nil {
		quote = quotes[rand.IntN(len(quotes))]
		return quote
	}
	quote = quotes[r.IntN(len(quotes))]
	return quote
}
