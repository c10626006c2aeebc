package notation

import (
	"strconv"
	"strings"
)

// String renders the comparison in notation form. The Equal operator has
// no symbol and a nil threshold renders nothing.
func (c Comparison) String() string {
	var b strings.Builder
	switch c.Operator {
	case GreaterThan:
		b.WriteByte('>')
	case LessThan:
		b.WriteByte('<')
	}
	if c.Threshold != nil {
		b.WriteString(strconv.Itoa(*c.Threshold))
	}
	return b.String()
}

func (f FaceRange) String() string {
	return strconv.Itoa(f.Low) + ":" + strconv.Itoa(f.High)
}

func (f FaceStandard) String() string {
	return strconv.Itoa(f.Faces)
}

func (FacePercentile) String() string {
	return "%"
}

func (FaceFate) String() string {
	return "F"
}

func (d Die) String() string {
	return strconv.Itoa(d.Count) + "d" + d.Face.String()
}

func (r Reroll) String() string {
	return "r" + r.Comparison.String()
}

// String renders the explode with "x" as the leading literal. A leading
// "!" would merge with a following explode or critical on reparse ("!"
// then "!" reads as penetrating), while "x" is not a sub-flag and cannot
// be captured by a preceding modifier.
func (e Explode) String() string {
	flag := ""
	switch e.Mode {
	case ExplodePenetrating:
		flag = "!"
	case ExplodeCompounding:
		flag = "c"
	}
	return "x" + flag + e.Comparison.String()
}

func (k KeepDiscard) String() string {
	action := "k"
	if k.Action == Discard {
		action = "d"
	}
	extremum := ""
	switch k.Extremum {
	case Highest:
		extremum = "h"
	case Lowest:
		extremum = "l"
	}
	return action + extremum + k.Comparison.String()
}

func (c Critical) String() string {
	kind := "s"
	if c.Kind == CritFailure {
		kind = "f"
	}
	return "c" + kind + c.Comparison.String()
}

// String renders the roll in canonical notation. Parsing the result
// produces a Roll equal to the original.
func (r Roll) String() string {
	var b strings.Builder
	b.WriteString(r.Die.String())
	for _, modifier := range r.Modifiers {
		b.WriteString(modifier.String())
	}
	return b.String()
}
