package mcmc

import "math/rand"

// NewSource returns a deterministic source for one chain. Equal seeds give
// identical streams.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// normalVector draws n independent N(0, sd^2) components.
func normalVector(rng Source, n int, sd float64) State {
	v := make(State, n)
	for i := range v {
		v[i] = rng.NormFloat64() * sd
	}
	return v
}
