package components

import "fmt"

// BotState is the top-level behavior mode of a bot. Exactly one is current
// per tick.
type BotState int

const (
	StatePatrol BotState = iota
	StateEngage
	StateRetreat
	StateReposition
	StateExecutingSignature
)

// BotStates lists every state in declaration order.
var BotStates = []BotState{
	StatePatrol,
	StateEngage,
	StateRetreat,
	StateReposition,
	StateExecutingSignature,
}

func (s BotState) String() string {
	switch s {
	case StatePatrol:
		return "PATROL"
	case StateEngage:
		return "ENGAGE"
	case StateRetreat:
		return "RETREAT"
	case StateReposition:
		return "REPOSITION"
	case StateExecutingSignature:
		return "EXECUTING_SIGNATURE"
	}
	return fmt.Sprintf("BotState(%d)", int(s))
}
