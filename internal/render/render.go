// Package render formats evaluated rolls for terminal output.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/roll/internal/notation"
	"github.com/louisbranch/roll/internal/roller"
)

// ANSI SGR sequences used by the colored renderer.
const (
	ansiReset         = "\x1b[0m"
	ansiBold          = "\x1b[1m"
	ansiDim           = "\x1b[2m"
	ansiStrikethrough = "\x1b[9m"
	ansiRed           = "\x1b[31m"
	ansiGreen         = "\x1b[32m"
)

// Renderer formats roll results, optionally with ANSI styling.
type Renderer struct {
	color bool
}

// New returns a renderer. When color is false all styling is omitted and
// the output is plain text.
func New(color bool) *Renderer {
	return &Renderer{color: color}
}

// Values formats the evaluated values of a roll, space separated.
// Discarded values are struck through, critical successes and failures
// colored, rerolled values shown dimmed before their replacement, and
// explosion chains annotated after the value.
func (r *Renderer) Values(roll notation.Roll, values []roller.Value) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = r.value(roll.Die.Face, value)
	}
	return strings.Join(parts, " ")
}

// Result formats a full result line: the values followed by the total.
func (r *Renderer) Result(roll notation.Roll, result roller.Result) string {
	return fmt.Sprintf("%s = %d", r.Values(roll, result.Values), result.Total)
}

func (r *Renderer) value(face notation.FaceSpec, value roller.Value) string {
	var rerolled, exploded []string
	for _, action := range value.Actions {
		switch action.Kind {
		case roller.ActionReroll:
			rerolled = append(rerolled, faceText(face, action.Result))
		case roller.ActionExplode:
			exploded = append(exploded, faceText(face, action.Result))
		}
	}

	text := faceText(face, value.Result)
	if value.Discarded() {
		text = r.style(text, ansiStrikethrough)
	}
	switch {
	case value.Has(roller.ActionFailure):
		text = r.style(text, ansiRed)
	case value.Has(roller.ActionSuccess):
		text = r.style(text, ansiGreen)
	}
	if len(exploded) > 0 {
		text = r.style(text, ansiGreen, ansiBold)
	}

	var b strings.Builder
	if len(rerolled) > 0 {
		b.WriteString(r.style("("+strings.Join(rerolled, " ")+")", ansiDim, ansiStrikethrough))
	}
	b.WriteString(text)
	if len(exploded) > 0 {
		b.WriteString("(" + r.style(strings.Join(exploded, " "), ansiBold) + ")")
	}
	return b.String()
}

func (r *Renderer) style(text string, codes ...string) string {
	if !r.color {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// faceText formats a single result for a face kind. Fate faces print as
// signs and faces reaching double digits are zero padded so columns of
// values line up.
func faceText(face notation.FaceSpec, result int) string {
	if _, ok := face.(notation.FaceFate); ok {
		switch {
		case result < 0:
			return "-"
		case result > 0:
			return "+"
		default:
			return "0"
		}
	}
	if width := faceWidth(face); width > 1 && result >= 0 {
		return fmt.Sprintf("%0*d", width, result)
	}
	return strconv.Itoa(result)
}

func faceWidth(face notation.FaceSpec) int {
	high := 0
	switch f := face.(type) {
	case notation.FaceRange:
		high = f.High
	case notation.FacePercentile:
		high = 100
	case notation.FaceStandard:
		high = f.Faces
	}
	return len(strconv.Itoa(high))
}
