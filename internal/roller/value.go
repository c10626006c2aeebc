package roller

import "github.com/louisbranch/roll/internal/notation"

// ActionKind identifies a modifier effect recorded on a value.
type ActionKind int

const (
	// ActionDiscard marks a value excluded from totals.
	ActionDiscard ActionKind = iota
	// ActionReroll records a replaced result.
	ActionReroll
	// ActionExplode records an exploded result.
	ActionExplode
	// ActionSuccess marks a critical success.
	ActionSuccess
	// ActionFailure marks a critical failure.
	ActionFailure
)

func (k ActionKind) String() string {
	switch k {
	case ActionDiscard:
		return "discard"
	case ActionReroll:
		return "reroll"
	case ActionExplode:
		return "explode"
	case ActionSuccess:
		return "success"
	case ActionFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Action is one modifier effect applied to a value. Result carries the
// die result the action recorded: the replaced result for a reroll, the
// triggering result for a standard or penetrating explosion, and the
// added result for a compounding one.
type Action struct {
	Kind   ActionKind
	Result int
	Mode   notation.ExplodeMode
}

// Value is a single die result together with the modifier actions applied
// to it, in application order.
type Value struct {
	Result  int
	Actions []Action
}

// Has reports whether any recorded action is of the given kind.
func (v Value) Has(kind ActionKind) bool {
	for _, action := range v.Actions {
		if action.Kind == kind {
			return true
		}
	}
	return false
}

// Discarded reports whether the value is excluded from totals.
func (v Value) Discarded() bool {
	return v.Has(ActionDiscard)
}

func (v Value) withAction(action Action) Value {
	v.Actions = append(v.Actions, action)
	return v
}

func (v Value) update(result int, action Action) Value {
	v.Result = result
	v.Actions = append(v.Actions, action)
	return v
}
