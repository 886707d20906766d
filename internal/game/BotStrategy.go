package game

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrStrategyNotFound      = errors.New("bot strategy not found")
	ErrInvalidStrategyResult = errors.New("bot strategy returned an invalid direction")
	ErrStrategyClosed        = errors.New("bot strategy is closed")
)

// Strategy chooses the next move for a session that is not stuck.
type Strategy interface {
	NextDirection(session Session) (Direction, error)
}

// BotStrategy is a named Lua chunk that defines nextDirection(state).
//
// state.grid is a 1-based table of rows (0 = blank), state.size and
// state.score are numbers, and state.moves maps "up", "down", "left" and
// "right" to {score = n, blanks = n} for every direction that changes the
// board. The function returns one of those four names.
type BotStrategy struct {
	StrategyName       string
	StrategyDefinition string
}

const DefaultStrategyName = "corner"

var builtinStrategies = map[string]string{
	"corner": `
		local preference = {"down", "left", "right", "up"}

		function nextDirection(state)
			for _, dir in ipairs(preference) do
				if state.moves[dir] ~= nil then
					return dir
				end
			end
			return "down"
		end
	`,
	"greedy": `
		local order = {"down", "left", "right", "up"}

		function nextDirection(state)
			local best, bestValue = nil, -1
			for _, dir in ipairs(order) do
				local move = state.moves[dir]
				if move ~= nil then
					local value = move.score + move.blanks * 4
					if value > bestValue then
						best, bestValue = dir, value
					end
				end
			end
			return best or "down"
		end
	`,
}

// BuiltinStrategyNames lists the strategies that ship with the binary.
func BuiltinStrategyNames() []string {
	return []string{"corner", "greedy"}
}

func getBotStrategy(name string) (*BotStrategy, error) {
	definition, ok := builtinStrategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStrategyNotFound, name)
	}
	return &BotStrategy{StrategyName: name, StrategyDefinition: definition}, nil
}

// LoadBotStrategy resolves a built-in name, or failing that reads a .lua file.
func LoadBotStrategy(nameOrPath string) (*BotStrategy, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultStrategyName
	}
	if strategy, err := getBotStrategy(nameOrPath); err == nil {
		return strategy, nil
	}

	definition, err := os.ReadFile(nameOrPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStrategyNotFound, nameOrPath)
		}
		return nil, fmt.Errorf("failed to read strategy %s: %w", nameOrPath, err)
	}
	return &BotStrategy{StrategyName: nameOrPath, StrategyDefinition: string(definition)}, nil
}
