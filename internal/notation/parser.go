package notation

import (
	"fmt"
	"strconv"
)

// SyntaxError reports the first input position where no grammar
// alternative matched, along with the rule being attempted there.
type SyntaxError struct {
	Pos  int
	Rule string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: expected %s", e.Pos, e.Rule)
}

// Parse parses dice notation into a Roll. Literals are matched ignoring
// ASCII case. On failure it returns a *SyntaxError describing the first
// unparseable position; there are no partial results.
func Parse(input string) (Roll, error) {
	p := &parser{input: input}

	die, err := p.die()
	if err != nil {
		return Roll{}, err
	}

	modifiers := p.behaviors()

	if p.pos < len(p.input) {
		return Roll{}, &SyntaxError{Pos: p.pos, Rule: "end of input"}
	}

	return Roll{Die: die, Modifiers: modifiers}, nil
}

// parser is a single-pass descent over the input with backtracking via
// position resets. Ordered choice commits to the first alternative that
// matches.
type parser struct {
	input string
	pos   int
}

// die parses an optional count followed by the "d" literal and a face
// spec. A missing count means 1.
func (p *parser) die() (Die, error) {
	start := p.pos
	count := 1

	digits := p.digits()
	if digits != "" {
		value, err := p.number(digits, start)
		if err != nil {
			return Die{}, err
		}
		count = value
	}

	if !p.matchFold("d") {
		p.pos = start
		return Die{}, &SyntaxError{Pos: p.pos, Rule: "die"}
	}

	face, err := p.faceSpec()
	if err != nil {
		return Die{}, err
	}

	return Die{Count: count, Face: face}, nil
}

// faceSpec parses the text after the "d" literal. Alternatives are tried
// in priority order: range, plain digits, percentile, fate. The range
// alternative runs first so "6:10" is never mis-split into a standard die
// with a dangling ":10".
func (p *parser) faceSpec() (FaceSpec, error) {
	start := p.pos

	low := p.digits()
	if p.matchFold(":") {
		highStart := p.pos
		high := p.digits()
		if high != "" {
			highValue, err := p.number(high, highStart)
			if err != nil {
				return nil, err
			}
			lowValue := 0
			if low != "" {
				lowValue, err = p.number(low, start)
				if err != nil {
					return nil, err
				}
			}
			return FaceRange{Low: lowValue, High: highValue}, nil
		}
	}
	p.pos = start

	if digits := p.digits(); digits != "" {
		faces, err := p.number(digits, start)
		if err != nil {
			return nil, err
		}
		return FaceStandard{Faces: faces}, nil
	}

	if p.matchFold("%") {
		return FacePercentile{}, nil
	}

	if p.matchFold("fate") || p.matchFold("f") {
		return FaceFate{}, nil
	}

	return nil, &SyntaxError{Pos: p.pos, Rule: "face spec"}
}

// behaviors parses zero or more modifiers, trying reroll, explode,
// discard, and critical in that order at each position. It stops at the
// first position where none match.
func (p *parser) behaviors() []Modifier {
	var modifiers []Modifier
	for {
		modifier, ok := p.behavior()
		if !ok {
			return modifiers
		}
		modifiers = append(modifiers, modifier)
	}
}

func (p *parser) behavior() (Modifier, bool) {
	if m, ok := p.reroll(); ok {
		return m, true
	}
	if m, ok := p.explode(); ok {
		return m, true
	}
	if m, ok := p.keepDiscard(); ok {
		return m, true
	}
	if m, ok := p.critical(); ok {
		return m, true
	}
	return nil, false
}

func (p *parser) reroll() (Modifier, bool) {
	if !p.matchFold("r") {
		return nil, false
	}
	return Reroll{Comparison: p.comparison()}, true
}

// explode parses "!" or "x" followed by an optional sub-flag: a second
// exploding literal means penetrating, "c" or "p" means compounding.
func (p *parser) explode() (Modifier, bool) {
	if !p.matchFold("!") && !p.matchFold("x") {
		return nil, false
	}

	mode := ExplodeStandard
	switch {
	case p.matchFold("!"):
		mode = ExplodePenetrating
	case p.matchFold("c"), p.matchFold("p"):
		mode = ExplodeCompounding
	}

	return Explode{Mode: mode, Comparison: p.comparison()}, true
}

func (p *parser) keepDiscard() (Modifier, bool) {
	var action KeepAction
	switch {
	case p.matchFold("d"):
		action = Discard
	case p.matchFold("k"):
		action = Keep
	default:
		return nil, false
	}

	extremum := ExtremumNone
	switch {
	case p.matchFold("h"):
		extremum = Highest
	case p.matchFold("l"):
		extremum = Lowest
	}

	return KeepDiscard{Action: action, Extremum: extremum, Comparison: p.comparison()}, true
}

func (p *parser) critical() (Modifier, bool) {
	if !p.matchFold("c") {
		return nil, false
	}

	kind := CritSuccess
	switch {
	case p.matchFold("s"):
		kind = CritSuccess
	case p.matchFold("f"):
		kind = CritFailure
	}

	return Critical{Kind: kind, Comparison: p.comparison()}, true
}

// comparison parses an optional ">" or "<" followed by optional digits.
// It always succeeds, possibly consuming nothing: a missing operator
// means Equal and a missing threshold stays nil for the roller to
// default. A bare operator with no digits is a legal parse.
func (p *parser) comparison() Comparison {
	operator := Equal
	switch {
	case p.matchFold(">"):
		operator = GreaterThan
	case p.matchFold("<"):
		operator = LessThan
	}

	start := p.pos
	digits := p.digits()
	if digits == "" {
		return Comparison{Operator: operator}
	}

	value, err := p.number(digits, start)
	if err != nil {
		// Overflowed thresholds roll back so the digits surface as
		// trailing input in the caller's syntax error.
		p.pos = start
		return Comparison{Operator: operator}
	}
	return Comparison{Operator: operator, Threshold: &value}
}

// digits consumes a run of ASCII digits, which may be empty.
func (p *parser) digits() string {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	return p.input[start:p.pos]
}

// number converts a digit run, reporting overflow at its position.
func (p *parser) number(digits string, pos int) (int, error) {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &SyntaxError{Pos: pos, Rule: "number"}
	}
	return value, nil
}

// matchFold consumes lit if the input matches it ignoring ASCII case.
// lit must be lowercase.
func (p *parser) matchFold(lit string) bool {
	end := p.pos + len(lit)
	if end > len(p.input) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if lowerASCII(p.input[p.pos+i]) != lit[i] {
			return false
		}
	}
	p.pos = end
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
