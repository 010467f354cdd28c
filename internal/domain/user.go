package domain

// UserState represents a bot user's current interaction state
type UserState string

const (
	StateIdle          UserState = "idle"
	StateWaitingAdd    UserState = "waiting_add"
	StateWaitingLookup UserState = "waiting_lookup"
	StateWaitingExtend UserState = "waiting_extend"
	StateWaitingDelete UserState = "waiting_delete"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
}
