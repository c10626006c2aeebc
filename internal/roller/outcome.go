package roller

// Outcome folding over evaluated values. Discarded values never count.

// Total sums the non-discarded values.
func Total(values []Value) int {
	total := 0
	for _, value := range values {
		if !value.Discarded() {
			total += value.Result
		}
	}
	return total
}

// TargetCount counts non-discarded values meeting or exceeding point.
func TargetCount(values []Value, point int) int {
	count := 0
	for _, value := range values {
		if !value.Discarded() && value.Result >= point {
			count++
		}
	}
	return count
}

// MatchCount counts result values that occur more than once among the
// non-discarded values.
func MatchCount(values []Value) int {
	seen := make(map[int]int)
	for _, value := range values {
		if !value.Discarded() {
			seen[value.Result]++
		}
	}
	count := 0
	for _, occurrences := range seen {
		if occurrences > 1 {
			count++
		}
	}
	return count
}

// CritCount counts critical successes and failures among the
// non-discarded values.
func CritCount(values []Value) (successes, failures int) {
	for _, value := range values {
		if value.Discarded() {
			continue
		}
		if value.Has(ActionSuccess) {
			successes++
		}
		if value.Has(ActionFailure) {
			failures++
		}
	}
	return successes, failures
}
