package policies

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SoftmaxSample draws an index from the softmax distribution over the
// given values at the given temperature. It is a pure function of its
// arguments: the random source is injected so inference sampling is
// reproducible. Lower temperatures sharpen toward the argmax, higher
// ones flatten toward uniform.
func SoftmaxSample(values []float64, temperature float64, src rand.Source) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if temperature <= 0 {
		return Argmax(values), true
	}

	// subtract the max before exponentiating for numeric stability
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	weights := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		w := math.Exp((v - max) / temperature)
		weights[i] = w
		sum += w
	}
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return Argmax(values), true
	}
	for i := range weights {
		weights[i] /= sum
	}
	return sampleuv.NewWeighted(weights, src).Take()
}

// Argmax returns the index of the largest value, lowest index on ties.
func Argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}

// SoftmaxProbs computes the temperature scaled softmax distribution,
// exposed for analysis and tests.
func SoftmaxProbs(values []float64, temperature float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	if temperature <= 0 {
		temperature = 1e-3
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	probs := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		probs[i] = math.Exp((v - max) / temperature)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
