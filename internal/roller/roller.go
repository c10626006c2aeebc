// Package roller evaluates parsed dice notation into rolled values,
// applying the roll's behavior modifiers in their written order.
package roller

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/louisbranch/roll/internal/notation"
)

// ErrInvalidCount indicates the die count is not positive. A zero count
// is syntactically legal notation but has nothing to evaluate.
var ErrInvalidCount = errors.New("die count must be positive")

// ErrInvalidRange indicates a face range whose low bound exceeds its
// high bound.
var ErrInvalidRange = errors.New("face range low bound must not exceed high bound")

// ErrInvalidFaces indicates a standard die with no faces. "d0" is
// syntactically legal notation but has nothing to roll.
var ErrInvalidFaces = errors.New("die must have at least one face")

// maxChain bounds reroll and explosion chains per die so evaluation of a
// bounded input stays bounded even when every face matches.
const maxChain = 100

// Request describes one evaluation of a parsed roll.
type Request struct {
	Roll notation.Roll
	Seed int64
}

// Result captures the evaluated values and their total.
type Result struct {
	Values []Value
	Total  int
	Seed   int64
}

// Eval rolls the request's dice and applies its modifiers.
//
// Eval is deterministic with respect to Seed: the same seed and the same
// Roll always produce the same Result. Modifiers apply in the order they
// were written; duplicates apply twice. Comparison thresholds left out of
// the notation default per face kind: the lowest face for rerolls,
// critical failures, and discards, and the highest face for explosions,
// critical successes, and keeps.
func Eval(request Request) (Result, error) {
	roll := request.Roll
	if roll.Die.Count <= 0 {
		return Result{}, ErrInvalidCount
	}
	switch f := roll.Die.Face.(type) {
	case notation.FaceRange:
		if f.Low > f.High {
			return Result{}, ErrInvalidRange
		}
	case notation.FaceStandard:
		if f.Faces <= 0 {
			return Result{}, ErrInvalidFaces
		}
	}

	rng := rand.New(rand.NewSource(request.Seed))
	face := roll.Die.Face

	values := make([]Value, roll.Die.Count)
	for i := range values {
		values[i] = Value{Result: rollFace(rng, face)}
	}

	for _, modifier := range roll.Modifiers {
		values = apply(modifier, face, values, rng)
	}

	return Result{
		Values: values,
		Total:  Total(values),
		Seed:   request.Seed,
	}, nil
}

// apply dispatches one modifier over the current values.
func apply(modifier notation.Modifier, face notation.FaceSpec, values []Value, rng *rand.Rand) []Value {
	switch m := modifier.(type) {
	case notation.Reroll:
		return applyReroll(m, face, values, rng)
	case notation.Explode:
		return applyExplode(m, face, values, rng)
	case notation.KeepDiscard:
		return applyKeepDiscard(m, face, values)
	case notation.Critical:
		return applyCritical(m, face, values)
	default:
		return values
	}
}

// applyReroll replaces each matching result with a fresh roll, once per
// value.
func applyReroll(m notation.Reroll, face notation.FaceSpec, values []Value, rng *rand.Rand) []Value {
	low, _ := faceBounds(face)
	threshold := resolve(m.Comparison, low)

	result := make([]Value, 0, len(values))
	for _, value := range values {
		if !value.Discarded() && matches(m.Comparison.Operator, threshold, value.Result) {
			replaced := value.Result
			value = value.update(rollFace(rng, face), Action{Kind: ActionReroll, Result: replaced})
		}
		result = append(result, value)
	}
	return result
}

// applyExplode rolls extra dice for matching results. Standard and
// penetrating explosions append chained values after the triggering die;
// compounding folds the extra rolls into it.
func applyExplode(m notation.Explode, face notation.FaceSpec, values []Value, rng *rand.Rand) []Value {
	low, high := faceBounds(face)
	threshold := resolve(m.Comparison, high)

	result := make([]Value, 0, len(values))
	for _, value := range values {
		result = append(result, value)
		if value.Discarded() {
			continue
		}

		current := value.Result
		for depth := 0; depth < maxChain && matches(m.Comparison.Operator, threshold, current); depth++ {
			extra := rollFace(rng, face)
			switch m.Mode {
			case notation.ExplodeCompounding:
				last := len(result) - 1
				result[last] = result[last].update(
					result[last].Result+extra,
					Action{Kind: ActionExplode, Result: extra, Mode: m.Mode},
				)
			case notation.ExplodePenetrating:
				extra = max(extra-1, low)
				result = append(result, Value{}.update(extra, Action{Kind: ActionExplode, Result: current, Mode: m.Mode}))
			default:
				result = append(result, Value{}.update(extra, Action{Kind: ActionExplode, Result: current, Mode: m.Mode}))
			}
			current = extra
		}
	}
	return result
}

// applyKeepDiscard discards values. With an extremum the threshold is the
// number of dice affected; without one the comparison selects values
// directly, keeping matches for a keep and dropping them for a discard.
func applyKeepDiscard(m notation.KeepDiscard, face notation.FaceSpec, values []Value) []Value {
	if m.Extremum == notation.ExtremumNone {
		return discardByValue(m, face, values)
	}
	return discardByRank(m, values)
}

// discardByValue filters values against the comparison.
func discardByValue(m notation.KeepDiscard, face notation.FaceSpec, values []Value) []Value {
	low, high := faceBounds(face)
	fallback := high
	if m.Action == notation.Discard {
		fallback = low
	}
	threshold := resolve(m.Comparison, fallback)

	result := make([]Value, 0, len(values))
	for _, value := range values {
		if !value.Discarded() {
			matched := matches(m.Comparison.Operator, threshold, value.Result)
			if matched == (m.Action == notation.Discard) {
				value = value.withAction(Action{Kind: ActionDiscard})
			}
		}
		result = append(result, value)
	}
	return result
}

// discardByRank discards all but the highest or lowest n values for a
// keep, or exactly those n values for a discard. n defaults to 1.
func discardByRank(m notation.KeepDiscard, values []Value) []Value {
	n := resolve(m.Comparison, 1)
	if n < 0 {
		n = 0
	}

	live := make([]int, 0, len(values))
	for i, value := range values {
		if !value.Discarded() {
			live = append(live, i)
		}
	}

	// Sort live indexes by result, ties by position, so the selection is
	// deterministic.
	sort.SliceStable(live, func(a, b int) bool {
		return values[live[a]].Result < values[live[b]].Result
	})
	if m.Extremum == notation.Highest {
		for a, b := 0, len(live)-1; a < b; a, b = a+1, b-1 {
			live[a], live[b] = live[b], live[a]
		}
	}

	// live is now ordered from the named extremum down; a keep discards
	// everything after the first n, a discard drops exactly the first n.
	var doomed []int
	if m.Action == notation.Keep {
		if n < len(live) {
			doomed = live[n:]
		}
	} else {
		doomed = live[:min(n, len(live))]
	}

	result := append([]Value(nil), values...)
	for _, i := range doomed {
		result[i] = result[i].withAction(Action{Kind: ActionDiscard})
	}
	return result
}

// applyCritical marks matching values as critical successes or failures.
func applyCritical(m notation.Critical, face notation.FaceSpec, values []Value) []Value {
	low, high := faceBounds(face)
	fallback := high
	kind := ActionSuccess
	if m.Kind == notation.CritFailure {
		fallback = low
		kind = ActionFailure
	}
	threshold := resolve(m.Comparison, fallback)

	result := make([]Value, 0, len(values))
	for _, value := range values {
		if !value.Discarded() && matches(m.Comparison.Operator, threshold, value.Result) {
			value = value.withAction(Action{Kind: kind})
		}
		result = append(result, value)
	}
	return result
}

// resolve returns the comparison threshold, or fallback when the
// notation omitted it.
func resolve(c notation.Comparison, fallback int) int {
	if c.Threshold != nil {
		return *c.Threshold
	}
	return fallback
}

// matches reports whether result satisfies the operator against the
// threshold.
func matches(operator notation.Operator, threshold, result int) bool {
	switch operator {
	case notation.GreaterThan:
		return result > threshold
	case notation.LessThan:
		return result < threshold
	default:
		return result == threshold
	}
}

// faceBounds returns the inclusive value bounds for a face kind.
func faceBounds(face notation.FaceSpec) (low, high int) {
	switch f := face.(type) {
	case notation.FaceRange:
		return f.Low, f.High
	case notation.FacePercentile:
		return 1, 100
	case notation.FaceFate:
		return -1, 1
	case notation.FaceStandard:
		return 1, f.Faces
	default:
		return 1, 1
	}
}

// rollFace rolls one die of the given face kind.
func rollFace(rng *rand.Rand, face notation.FaceSpec) int {
	low, high := faceBounds(face)
	return low + rng.Intn(high-low+1)
}
