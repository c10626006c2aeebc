// Package domain defines the MCP tools for parsing and rolling dice
// notation.
package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/roll/internal/history"
	"github.com/louisbranch/roll/internal/notation"
	"github.com/louisbranch/roll/internal/platform/random"
	"github.com/louisbranch/roll/internal/render"
	"github.com/louisbranch/roll/internal/roller"
)

// Recorder persists evaluated rolls. A nil Recorder disables history.
type Recorder interface {
	RecordRoll(ctx context.Context, entry history.Entry) (int64, error)
}

// ParseRollInput represents the MCP tool input for parsing notation.
type ParseRollInput struct {
	Notation string `json:"notation" jsonschema:"dice notation expression, e.g. 4d6kh3"`
}

// ParseRollResult represents the MCP tool output for parsing notation.
type ParseRollResult struct {
	Canonical string   `json:"canonical" jsonschema:"canonical form of the notation"`
	Count     int      `json:"count" jsonschema:"number of dice rolled"`
	Face      string   `json:"face" jsonschema:"face specification of the die"`
	Modifiers []string `json:"modifiers" jsonschema:"modifiers in application order"`
}

// RollInput represents the MCP tool input for rolling notation.
type RollInput struct {
	Notation string `json:"notation" jsonschema:"dice notation expression, e.g. 4d6kh3"`
	Seed     *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic rolls"`
}

// RollValue represents one evaluated die in MCP tool output.
type RollValue struct {
	Result    int    `json:"result" jsonschema:"final result of the die"`
	Discarded bool   `json:"discarded" jsonschema:"whether the die is excluded from the total"`
	Critical  string `json:"critical,omitempty" jsonschema:"critical marking (success or failure)"`
	Rerolled  []int  `json:"rerolled,omitempty" jsonschema:"replaced results from rerolls"`
	Exploded  []int  `json:"exploded,omitempty" jsonschema:"results that triggered or fed explosions"`
}

// RollResult represents the MCP tool output for rolling notation.
type RollResult struct {
	Canonical string      `json:"canonical" jsonschema:"canonical form of the notation"`
	Seed      int64       `json:"seed" jsonschema:"seed used for the roll"`
	Values    []RollValue `json:"values" jsonschema:"evaluated dice in roll order"`
	Total     int         `json:"total" jsonschema:"sum of non-discarded results"`
}

// RollOutcomeInput represents the MCP tool input for roll outcomes.
type RollOutcomeInput struct {
	Notation    string `json:"notation" jsonschema:"dice notation expression, e.g. 10d10cs"`
	Seed        *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic rolls"`
	TargetPoint *int   `json:"target_point,omitempty" jsonschema:"optional threshold for counting successes"`
}

// RollOutcomeResult represents the MCP tool output for roll outcomes.
type RollOutcomeResult struct {
	Canonical     string `json:"canonical" jsonschema:"canonical form of the notation"`
	Seed          int64  `json:"seed" jsonschema:"seed used for the roll"`
	Total         int    `json:"total" jsonschema:"sum of non-discarded results"`
	TargetCount   *int   `json:"target_count,omitempty" jsonschema:"results meeting the target point"`
	MatchCount    int    `json:"match_count" jsonschema:"result values occurring more than once"`
	CritSuccesses int    `json:"crit_successes" jsonschema:"critical successes"`
	CritFailures  int    `json:"crit_failures" jsonschema:"critical failures"`
}

// ParseRollTool defines the MCP tool schema for parsing notation.
func ParseRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_roll",
		Description: "Parses dice notation and returns its canonical form",
	}
}

// RollTool defines the MCP tool schema for rolling notation.
func RollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll",
		Description: "Rolls dice notation and returns the evaluated dice",
	}
}

// RollOutcomeTool defines the MCP tool schema for roll outcomes.
func RollOutcomeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_outcome",
		Description: "Rolls dice notation and summarises the outcome",
	}
}

// ParseRollHandler parses notation without rolling it.
func ParseRollHandler() mcp.ToolHandlerFor[ParseRollInput, ParseRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ParseRollInput) (*mcp.CallToolResult, ParseRollResult, error) {
		parsed, err := notation.Parse(input.Notation)
		if err != nil {
			return nil, ParseRollResult{}, fmt.Errorf("parse notation %q: %w", input.Notation, err)
		}

		modifiers := make([]string, len(parsed.Modifiers))
		for i, modifier := range parsed.Modifiers {
			modifiers[i] = modifier.String()
		}
		result := ParseRollResult{
			Canonical: parsed.String(),
			Count:     parsed.Die.Count,
			Face:      parsed.Die.Face.String(),
			Modifiers: modifiers,
		}
		return nil, result, nil
	}
}

// RollHandler rolls notation and optionally records it.
func RollHandler(recorder Recorder) mcp.ToolHandlerFor[RollInput, RollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollInput) (*mcp.CallToolResult, RollResult, error) {
		parsed, result, err := evaluate(input.Notation, input.Seed)
		if err != nil {
			return nil, RollResult{}, err
		}
		if err := recordRoll(ctx, recorder, parsed, result); err != nil {
			return nil, RollResult{}, err
		}

		values := make([]RollValue, len(result.Values))
		for i, value := range result.Values {
			values[i] = toRollValue(value)
		}
		return nil, RollResult{
			Canonical: parsed.String(),
			Seed:      result.Seed,
			Values:    values,
			Total:     result.Total,
		}, nil
	}
}

// RollOutcomeHandler rolls notation and folds the values into outcome
// counts.
func RollOutcomeHandler(recorder Recorder) mcp.ToolHandlerFor[RollOutcomeInput, RollOutcomeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollOutcomeInput) (*mcp.CallToolResult, RollOutcomeResult, error) {
		parsed, result, err := evaluate(input.Notation, input.Seed)
		if err != nil {
			return nil, RollOutcomeResult{}, err
		}
		if err := recordRoll(ctx, recorder, parsed, result); err != nil {
			return nil, RollOutcomeResult{}, err
		}

		successes, failures := roller.CritCount(result.Values)
		outcome := RollOutcomeResult{
			Canonical:     parsed.String(),
			Seed:          result.Seed,
			Total:         result.Total,
			MatchCount:    roller.MatchCount(result.Values),
			CritSuccesses: successes,
			CritFailures:  failures,
		}
		if input.TargetPoint != nil {
			count := roller.TargetCount(result.Values, *input.TargetPoint)
			outcome.TargetCount = &count
		}
		return nil, outcome, nil
	}
}

func evaluate(input string, seed *int64) (notation.Roll, roller.Result, error) {
	parsed, err := notation.Parse(input)
	if err != nil {
		return notation.Roll{}, roller.Result{}, fmt.Errorf("parse notation %q: %w", input, err)
	}

	// An explicit seed is authoritative, zero included; only an absent
	// one draws a random seed.
	var value int64
	if seed != nil {
		value = *seed
	} else {
		value, err = random.NewSeed()
		if err != nil {
			return notation.Roll{}, roller.Result{}, err
		}
	}

	result, err := roller.Eval(roller.Request{Roll: parsed, Seed: value})
	if err != nil {
		return notation.Roll{}, roller.Result{}, fmt.Errorf("evaluate %q: %w", input, err)
	}
	return parsed, result, nil
}

func recordRoll(ctx context.Context, recorder Recorder, parsed notation.Roll, result roller.Result) error {
	if recorder == nil {
		return nil
	}
	_, err := recorder.RecordRoll(ctx, history.Entry{
		Notation: parsed.String(),
		Seed:     result.Seed,
		Total:    result.Total,
		Results:  render.New(false).Values(parsed, result.Values),
	})
	if err != nil {
		return fmt.Errorf("record roll: %w", err)
	}
	return nil
}

func toRollValue(value roller.Value) RollValue {
	out := RollValue{
		Result:    value.Result,
		Discarded: value.Discarded(),
	}
	switch {
	case value.Has(roller.ActionFailure):
		out.Critical = "failure"
	case value.Has(roller.ActionSuccess):
		out.Critical = "success"
	}
	for _, action := range value.Actions {
		switch action.Kind {
		case roller.ActionReroll:
			out.Rerolled = append(out.Rerolled, action.Result)
		case roller.ActionExplode:
			out.Exploded = append(out.Exploded, action.Result)
		}
	}
	return out
}
