// Package randomizer is the engine's single source of non-determinism.
// Every draw (numbers, booleans, paths, shuffles, samples) funnels through
// one seeded stream, so the total order of draws fully determines the output.
// Two Randomizers built with the same seed and subjected to the same sequence
// of calls produce identical results.
//
// A Randomizer has one logical owner (the runner) and is not safe for
// concurrent use; steps receive it borrowed during planning.
package randomizer

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Randomizer manages pseudo-random draws with seed control for reproducibility.
type Randomizer struct {
	rng  *rand.Rand
	seed uint64
}

// New returns a Randomizer seeded from system entropy. The drawn seed is
// retained and can be read back via Seed for display, so any run can be
// replayed with WithSeed.
func New() *Randomizer {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return WithSeed(binary.BigEndian.Uint64(b[:]))
}

// WithSeed returns a Randomizer with a fully deterministic stream.
func WithSeed(seed uint64) *Randomizer {
	return &Randomizer{
		rng:  rand.New(rand.NewSource(int64(seed))),
		seed: seed,
	}
}

// Seed reports the seed this Randomizer was built with.
func (r *Randomizer) Seed() uint64 {
	return r.seed
}

// draw is the single primitive every method reduces to.
func (r *Randomizer) draw() uint32 {
	return r.rng.Uint32()
}

// NumberBetween returns a number in [min, max], both ends inclusive.
// Precondition: max >= min; violating it is a programming error.
func (r *Randomizer) NumberBetween(min, max uint32) uint32 {
	return min + r.draw()%(max-min+1)
}

// Bool returns a random boolean, derived from the parity of one draw.
func (r *Randomizer) Bool() bool {
	return r.draw()%2 == 0
}

// Path returns a random lowercase path component of 5 to 10 characters.
func (r *Randomizer) Path() string {
	n := r.NumberBetween(5, 10)
	name := make([]byte, n)
	for i := range name {
		name[i] = byte('a' + r.NumberBetween(0, 25))
	}
	return string(name)
}

// Shuffle returns a new slice holding every element of items exactly once in
// randomized order. The input is left unmodified.
func Shuffle[T any](r *Randomizer, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.NumberBetween(0, uint32(i)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PickRandom draws a count uniformly from 1 to 10, then samples that many
// elements from items with replacement. Duplicates and omissions are both
// expected: this is sampling, not subset selection, despite what the name
// suggests. Callers relying on seed-reproducible output depend on these exact
// semantics. Precondition: items is non-empty.
func PickRandom[T any](r *Randomizer, items []T) []T {
	count := int(r.NumberBetween(1, 10))
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		idx := int(r.NumberBetween(0, uint32(len(items)-1)))
		out = append(out, items[idx])
	}
	return out
}
