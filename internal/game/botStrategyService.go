package game

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

const strategyEntryPoint = "nextDirection"

// LuaStrategy runs a BotStrategy inside its own Lua state. Not safe for
// concurrent use; give every bot its own.
type LuaStrategy struct {
	Name     string
	luaState *lua.LState
}

func NewLuaStrategy(botStrategy *BotStrategy) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(botStrategy.StrategyDefinition); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua strategy %s: %w", botStrategy.StrategyName, err)
	}

	if luaState.GetGlobal(strategyEntryPoint).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w: %s does not define %s(state)", ErrStrategyNotFound,
			botStrategy.StrategyName, strategyEntryPoint)
	}

	return &LuaStrategy{Name: botStrategy.StrategyName, luaState: luaState}, nil
}

func (s *LuaStrategy) NextDirection(session Session) (Direction, error) {
	if s.luaState == nil {
		return Up, fmt.Errorf("%w: %s", ErrStrategyClosed, s.Name)
	}
	err := s.luaState.CallByParam(lua.P{
		Fn:      s.luaState.GetGlobal(strategyEntryPoint),
		NRet:    1,
		Protect: true,
	}, s.stateTable(session))
	if err != nil {
		return Up, fmt.Errorf("could not execute lua strategy %s: %w", s.Name, err)
	}

	luaReturn := s.luaState.Get(-1)
	s.luaState.Pop(1)

	name, ok := luaReturn.(lua.LString)
	if !ok {
		return Up, fmt.Errorf("%w: got lua %s, expected string", ErrInvalidStrategyResult, luaReturn.Type().String())
	}
	direction, err := ParseDirection(string(name))
	if err != nil {
		return Up, fmt.Errorf("%w: %v", ErrInvalidStrategyResult, err)
	}
	return direction, nil
}

// Close releases the Lua state. Calling it again is a no-op.
func (s *LuaStrategy) Close() {
	if s.luaState == nil {
		return
	}
	s.luaState.Close()
	s.luaState = nil
}

func (s *LuaStrategy) stateTable(session Session) *lua.LTable {
	L := s.luaState
	grid := session.Grid()

	rows := L.NewTable()
	for _, values := range grid.Values() {
		row := L.NewTable()
		for _, value := range values {
			row.Append(lua.LNumber(value))
		}
		rows.Append(row)
	}

	moves := L.NewTable()
	for _, direction := range AllDirections {
		slid, delta := grid.Slide(direction)
		if slid.Equal(grid) {
			continue
		}
		move := L.NewTable()
		L.SetField(move, "score", lua.LNumber(delta))
		L.SetField(move, "blanks", lua.LNumber(len(slid.BlankPositions())))
		L.SetField(moves, direction.String(), move)
	}

	state := L.NewTable()
	L.SetField(state, "grid", rows)
	L.SetField(state, "size", lua.LNumber(grid.Size()))
	L.SetField(state, "score", lua.LNumber(session.Score()))
	L.SetField(state, "moves", moves)
	return state
}
