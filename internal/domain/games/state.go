package games

import (
	"errors"
	"fmt"
	"strings"
)

// State is the lifecycle state of a game.
type State string

const (
	StateNone    State = ""
	StatePre     State = "pre"
	StateLive    State = "live"
	StateFinal   State = "final"
	StateRetired State = "retired"
)

// Transition names a move between two states.
type Transition string

const (
	TransitionHold     Transition = "hold"
	TransitionSchedule Transition = "schedule"
	TransitionGoLive   Transition = "go_live"
	TransitionFinalize Transition = "finalize"
	TransitionRetire   Transition = "retire"
)

// ErrIllegalTransition is returned when the state machine rejects a move.
var ErrIllegalTransition = errors.New("illegal state transition")

// ErrUnknownState is returned for feed states outside pre/live/final.
var ErrUnknownState = errors.New("unknown game state")

var transitionTable = map[State]map[State]Transition{
	StateNone: {
		StatePre:  TransitionSchedule,
		StateLive: TransitionSchedule,
	},
	StatePre: {
		StatePre:   TransitionHold,
		StateLive:  TransitionGoLive,
		StateFinal: TransitionFinalize,
	},
	StateLive: {
		StateLive:  TransitionHold,
		StateFinal: TransitionFinalize,
	},
	StateFinal: {
		StateFinal:   TransitionHold,
		StateRetired: TransitionRetire,
	},
}

// ParseState normalizes a raw feed state.
func ParseState(raw string) (State, error) {
	s := State(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatePre, StateLive, StateFinal:
		return s, nil
	default:
		return StateNone, fmt.Errorf("%w: %q", ErrUnknownState, raw)
	}
}

// Advance validates a move from one state to another and names it.
func Advance(from, to State) (Transition, error) {
	if t, ok := transitionTable[from][to]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q -> %q", ErrIllegalTransition, from, to)
}
