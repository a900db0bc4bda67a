package rewards

// Aggregator combines the catalog rules into a single scalar using a
// weight vector. It holds no mutable state of its own: the weights are
// passed per call so that callers decide when a style switch becomes
// visible.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Score is the weighted sum of every rule's score for the candidate
// action. Rules are independent and the sum is commutative, so the
// evaluation order carries no meaning.
func (a *Aggregator) Score(ctx *Context, action []int, w Weights) float64 {
	total := 0.0
	for k := 0; k < NumKinds; k++ {
		weight := w[k]
		if weight == 0 {
			continue
		}
		total += weight * catalog[k](ctx, action)
	}
	return total
}

// Breakdown returns every rule's unweighted score, for analysis and
// debugging off the training path. Safe to call concurrently with
// nothing else touching ctx: rules are pure.
func (a *Aggregator) Breakdown(ctx *Context, action []int) map[string]float64 {
	out := make(map[string]float64, NumKinds)
	for k := 0; k < NumKinds; k++ {
		out[Kind(k).String()] = catalog[k](ctx, action)
	}
	return out
}
