package render

import (
	"strings"
	"testing"

	"github.com/louisbranch/roll/internal/notation"
	"github.com/louisbranch/roll/internal/roller"
)

func d(faces int) notation.Roll {
	return notation.Roll{Die: notation.Die{Count: 1, Face: notation.FaceStandard{Faces: faces}}}
}

func TestRendererPlainValues(t *testing.T) {
	tcs := []struct {
		name   string
		roll   notation.Roll
		values []roller.Value
		want   string
	}{
		{
			name:   "single digit faces unpadded",
			roll:   d(6),
			values: []roller.Value{{Result: 1}, {Result: 6}},
			want:   "1 6",
		},
		{
			name:   "double digit faces padded",
			roll:   d(20),
			values: []roller.Value{{Result: 3}, {Result: 18}},
			want:   "03 18",
		},
		{
			name:   "percentile padded to three",
			roll:   notation.Roll{Die: notation.Die{Count: 1, Face: notation.FacePercentile{}}},
			values: []roller.Value{{Result: 7}, {Result: 100}},
			want:   "007 100",
		},
		{
			name: "fate faces as signs",
			roll: notation.Roll{Die: notation.Die{Count: 1, Face: notation.FaceFate{}}},
			values: []roller.Value{
				{Result: -1}, {Result: 0}, {Result: 1},
			},
			want: "- 0 +",
		},
		{
			name: "rerolled value shows replaced result",
			roll: d(6),
			values: []roller.Value{
				{Result: 4, Actions: []roller.Action{{Kind: roller.ActionReroll, Result: 1}}},
			},
			want: "(1)4",
		},
		{
			name: "exploded value shows trigger",
			roll: d(6),
			values: []roller.Value{
				{Result: 6},
				{Result: 3, Actions: []roller.Action{{Kind: roller.ActionExplode, Result: 6}}},
			},
			want: "6 3(6)",
		},
	}

	r := New(false)
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Values(tc.roll, tc.values); got != tc.want {
				t.Fatalf("Values returned %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRendererPlainResult(t *testing.T) {
	r := New(false)
	result := roller.Result{Values: []roller.Value{{Result: 3}, {Result: 5}}, Total: 8}

	if got := r.Result(d(6), result); got != "3 5 = 8" {
		t.Fatalf("Result returned %q, want %q", got, "3 5 = 8")
	}
}

func TestRendererColorStyling(t *testing.T) {
	r := New(true)

	discarded := roller.Value{Result: 2, Actions: []roller.Action{{Kind: roller.ActionDiscard}}}
	if got := r.Values(d(6), []roller.Value{discarded}); got != ansiStrikethrough+"2"+ansiReset {
		t.Fatalf("discarded value rendered as %q", got)
	}

	success := roller.Value{Result: 6, Actions: []roller.Action{{Kind: roller.ActionSuccess}}}
	if got := r.Values(d(6), []roller.Value{success}); got != ansiGreen+"6"+ansiReset {
		t.Fatalf("critical success rendered as %q", got)
	}

	failure := roller.Value{Result: 1, Actions: []roller.Action{{Kind: roller.ActionFailure}}}
	if got := r.Values(d(6), []roller.Value{failure}); got != ansiRed+"1"+ansiReset {
		t.Fatalf("critical failure rendered as %q", got)
	}
}

func TestRendererColorDisabled(t *testing.T) {
	r := New(false)
	values := []roller.Value{
		{Result: 2, Actions: []roller.Action{{Kind: roller.ActionDiscard}}},
		{Result: 6, Actions: []roller.Action{{Kind: roller.ActionSuccess}}},
	}

	if got := r.Values(d(6), values); strings.Contains(got, "\x1b") {
		t.Fatalf("plain renderer emitted escape codes: %q", got)
	}
}
