package generator

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// entropy adapts a rand.Rand to io.Reader so identifiers follow the
// request's seed instead of crypto/rand.
type entropy struct {
	r *rand.Rand
}

func (e entropy) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(e.r.Uint32())
	}
	return len(p), nil
}

// hexID returns the first n lowercase hex characters of a random v4 UUID.
// n must not exceed 12; later positions carry the fixed version nibble.
func hexID(r *rand.Rand, n int) string {
	id := uuid.Must(uuid.NewRandomFromReader(entropy{r: r}))
	return strings.ReplaceAll(id.String(), "-", "")[:n]
}

// intBetween draws uniformly from the closed range [lo, hi]
func intBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func int64Between(r *rand.Rand, lo, hi int64) int64 {
	return lo + r.Int64N(hi-lo+1)
}

// uniform draws a float from [lo, hi)
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func pick[T any](r *rand.Rand, values []T) T {
	return values[r.IntN(len(values))]
}

type weighted[T any] struct {
	value  T
	weight float64
}

// pickWeighted draws a value with probability proportional to its weight
func pickWeighted[T any](r *rand.Rand, choices []weighted[T]) T {
	total := 0.0
	for _, c := range choices {
		total += c.weight
	}
	x := r.Float64() * total
	for _, c := range choices {
		x -= c.weight
		if x < 0 {
			return c.value
		}
	}
	return choices[len(choices)-1].value
}
