//go:build scenario

package scenario

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario describes one scripted roll and its expected outcome.
type Scenario struct {
	Name                string
	Notation            string
	Seed                int64
	ExpectTotal         *int
	ExpectValues        []int
	ExpectDiscards      *int
	ExpectCritSuccesses *int
}

func loadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(scenario.Notation) == "" {
		return nil, fmt.Errorf("scenario %q has no notation", scenario.Name)
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "roll", Function: scenarioRoll},
	{Name: "seed", Function: scenarioSeed},
	{Name: "expect_total", Function: scenarioExpectTotal},
	{Name: "expect_values", Function: scenarioExpectValues},
	{Name: "expect_discards", Function: scenarioExpectDiscards},
	{Name: "expect_crit_successes", Function: scenarioExpectCritSuccesses},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name, Seed: 1}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		lua.Errorf(state, "expected scenario userdata")
	}
	return scenario
}

// returnSelf leaves the scenario on the stack so calls chain.
func returnSelf(state *lua.State) int {
	state.PushValue(1)
	return 1
}

func scenarioRoll(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Notation = lua.CheckString(state, 2)
	return returnSelf(state)
}

func scenarioSeed(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Seed = int64(lua.CheckInteger(state, 2))
	return returnSelf(state)
}

func scenarioExpectTotal(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckInteger(state, 2)
	scenario.ExpectTotal = &value
	return returnSelf(state)
}

func scenarioExpectValues(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)

	var values []int
	for i := 1; ; i++ {
		state.RawGetInt(2, i)
		if state.IsNil(-1) {
			state.Pop(1)
			break
		}
		value, ok := state.ToInteger(-1)
		if !ok {
			lua.Errorf(state, "expect_values entries must be integers")
		}
		values = append(values, value)
		state.Pop(1)
	}
	scenario.ExpectValues = values
	return returnSelf(state)
}

func scenarioExpectDiscards(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckInteger(state, 2)
	scenario.ExpectDiscards = &value
	return returnSelf(state)
}

func scenarioExpectCritSuccesses(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckInteger(state, 2)
	scenario.ExpectCritSuccesses = &value
	return returnSelf(state)
}
