// Package notation parses tabletop dice notation such as "3d6", "d20r1",
// and "8d6kh3cs6" into a structured roll description.
//
// A parsed Roll carries the die specification (count and face kind) plus
// the behavior modifiers in the order they were written. Parsing is pure:
// it never touches randomness, and applying the modifiers to rolled values
// is the roller package's job.
package notation

// Operator is the relational operator of a Comparison.
type Operator int

const (
	// Equal is the default operator when no symbol is written.
	Equal Operator = iota
	// GreaterThan corresponds to the ">" symbol.
	GreaterThan
	// LessThan corresponds to the "<" symbol.
	LessThan
)

func (o Operator) String() string {
	switch o {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	default:
		return "="
	}
}

// Comparison is the numeric condition shared by every modifier. Both parts
// are optional in the source text: a missing operator means Equal, and a
// nil Threshold means the roller picks a face-dependent default.
type Comparison struct {
	Operator  Operator
	Threshold *int
}

// FaceSpec describes the possible face values of a die. Exactly one of
// FaceRange, FaceStandard, FacePercentile, or FaceFate implements it.
type FaceSpec interface {
	faceSpec()
	// String renders the face spec in notation form, without the "d".
	String() string
}

// FaceRange is a die with custom face values from Low to High inclusive.
// A missing low bound parses as 0.
type FaceRange struct {
	Low  int
	High int
}

// FaceStandard is a conventional die with faces 1..Faces.
type FaceStandard struct {
	Faces int
}

// FacePercentile is a 100-sided die, kept distinct from FaceStandard so it
// can render as "d%".
type FacePercentile struct{}

// FaceFate is a three-valued fate die (-1, 0, +1).
type FaceFate struct{}

func (FaceRange) faceSpec()      {}
func (FaceStandard) faceSpec()   {}
func (FacePercentile) faceSpec() {}
func (FaceFate) faceSpec()       {}

// Die is a repeated roll of one face kind. Count defaults to 1 when the
// notation omits it. A count of 0 is syntactically legal; the roller
// rejects it.
type Die struct {
	Count int
	Face  FaceSpec
}

// Modifier is a post-roll behavior. Exactly one of Reroll, Explode,
// KeepDiscard, or Critical implements it.
type Modifier interface {
	modifier()
	// String renders the modifier in notation form.
	String() string
}

// Reroll rerolls any die result matching the comparison.
type Reroll struct {
	Comparison Comparison
}

// ExplodeMode selects how exploded results combine.
type ExplodeMode int

const (
	// ExplodeStandard adds a new die for each exploding result.
	ExplodeStandard ExplodeMode = iota
	// ExplodePenetrating adds a new die at a one-point penalty.
	ExplodePenetrating
	// ExplodeCompounding folds exploded results into the original die.
	ExplodeCompounding
)

// Explode rolls additional dice for results matching the comparison.
type Explode struct {
	Mode       ExplodeMode
	Comparison Comparison
}

// KeepAction selects whether matching dice are kept or discarded.
type KeepAction int

const (
	// Keep retains matching dice and discards the rest.
	Keep KeepAction = iota
	// Discard removes matching dice.
	Discard
)

// Extremum restricts a keep/discard to the highest or lowest results.
type Extremum int

const (
	// ExtremumNone means the comparison alone selects the affected dice.
	ExtremumNone Extremum = iota
	// Highest affects the highest results.
	Highest
	// Lowest affects the lowest results.
	Lowest
)

// KeepDiscard keeps or discards a subset of the rolled dice. With an
// extremum, the comparison threshold is the number of dice affected;
// without one, the comparison selects dice by value.
type KeepDiscard struct {
	Action     KeepAction
	Extremum   Extremum
	Comparison Comparison
}

// CritKind selects whether a critical marks successes or failures.
type CritKind int

const (
	// CritSuccess is the default when no sub-flag is written.
	CritSuccess CritKind = iota
	// CritFailure corresponds to the "f" sub-flag.
	CritFailure
)

// Critical marks results matching the comparison as critical successes or
// failures.
type Critical struct {
	Kind       CritKind
	Comparison Comparison
}

func (Reroll) modifier()      {}
func (Explode) modifier()     {}
func (KeepDiscard) modifier() {}
func (Critical) modifier()    {}

// Roll is the parsed representation of one dice-notation expression. The
// modifier order matches the source text; duplicates are preserved and
// their combined semantics are left to the roller.
type Roll struct {
	Die       Die
	Modifiers []Modifier
}
