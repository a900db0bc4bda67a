package rewards

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConfiguration marks configuration problems: unknown style names,
// unknown rule names, negative weights. These fail before any episode
// starts and are never raised during scoring.
var ErrConfiguration = errors.New("configuration error")

// Weights is a total mapping from reward kind to a non negative
// weight. The array representation makes the mapping total by
// construction; name based lookups happen only when resolving user
// configuration.
type Weights [numKinds]float64

// DefaultWeights is the uniform base weighting every preset starts
// from, matching the original RL Tuner defaults.
func DefaultWeights() Weights {
	var w Weights
	for i := range w {
		w[i] = 0.1
	}
	return w
}

// Get returns the weight for a kind.
func (w Weights) Get(k Kind) float64 {
	return w[k]
}

// With returns a copy with one weight replaced.
func (w Weights) With(k Kind, v float64) Weights {
	w[k] = v
	return w
}

// Merge overlays non listed kinds with the receiver's values: only the
// kinds present in the overlay change. Unknown names and negative
// weights are rejected.
func (w Weights) Merge(overlay map[string]float64) (Weights, error) {
	out := w
	for name, v := range overlay {
		k, err := ParseKind(name)
		if err != nil {
			return Weights{}, err
		}
		if v < 0 {
			return Weights{}, fmt.Errorf("%w: negative weight %f for rule %q", ErrConfiguration, v, name)
		}
		out[k] = v
	}
	return out, nil
}

// Map renders the weights as a name keyed map, for serialization and
// display.
func (w Weights) Map() map[string]float64 {
	out := make(map[string]float64, NumKinds)
	for i := 0; i < NumKinds; i++ {
		out[Kind(i).String()] = w[i]
	}
	return out
}

// WeightsFromMap builds a total weight vector from a name keyed map,
// starting from the defaults for unspecified rules.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	return DefaultWeights().Merge(m)
}

// Names lists every rule name in a stable order.
func Names() []string {
	out := make([]string, NumKinds)
	for i := 0; i < NumKinds; i++ {
		out[i] = Kind(i).String()
	}
	sort.Strings(out)
	return out
}
