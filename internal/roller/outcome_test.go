package roller

import "testing"

func discarded(result int) Value {
	return Value{Result: result}.withAction(Action{Kind: ActionDiscard})
}

func TestTotalSkipsDiscardedValues(t *testing.T) {
	values := []Value{{Result: 4}, discarded(6), {Result: 1}}

	if total := Total(values); total != 5 {
		t.Fatalf("Total returned %d, want 5", total)
	}
}

func TestTargetCount(t *testing.T) {
	tcs := []struct {
		values []Value
		point  int
		want   int
	}{
		{values: plain(3, 5, 7), point: 5, want: 2},
		{values: plain(3, 5, 7), point: 8, want: 0},
		{values: []Value{{Result: 9}, discarded(9)}, point: 5, want: 1},
		{values: nil, point: 1, want: 0},
	}

	for _, tc := range tcs {
		if got := TargetCount(tc.values, tc.point); got != tc.want {
			t.Fatalf("TargetCount(%v, %d) returned %d, want %d", tc.values, tc.point, got, tc.want)
		}
	}
}

func TestMatchCount(t *testing.T) {
	tcs := []struct {
		name   string
		values []Value
		want   int
	}{
		{name: "no repeats", values: plain(1, 2, 3), want: 0},
		{name: "one pair", values: plain(2, 2, 3), want: 1},
		{name: "triple counts once", values: plain(4, 4, 4), want: 1},
		{name: "two groups", values: plain(1, 1, 5, 5, 9), want: 2},
		{name: "discard breaks pair", values: []Value{{Result: 6}, discarded(6)}, want: 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchCount(tc.values); got != tc.want {
				t.Fatalf("MatchCount returned %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCritCount(t *testing.T) {
	values := []Value{
		Value{Result: 20}.withAction(Action{Kind: ActionSuccess}),
		Value{Result: 20}.withAction(Action{Kind: ActionSuccess}),
		Value{Result: 1}.withAction(Action{Kind: ActionFailure}),
		{Result: 10},
		discarded(20).withAction(Action{Kind: ActionSuccess}),
	}

	successes, failures := CritCount(values)
	if successes != 2 {
		t.Fatalf("CritCount successes = %d, want 2", successes)
	}
	if failures != 1 {
		t.Fatalf("CritCount failures = %d, want 1", failures)
	}
}
