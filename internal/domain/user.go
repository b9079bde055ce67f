package domain

import "time"

// MaxNicknameLength is the longest nickname accepted at login, in characters
const MaxNicknameLength = 64

// UserAccount represents a learner identified by nickname
type UserAccount struct {
	ID          int64
	Nickname    string
	LastLoginAt time.Time
	CreatedAt   time.Time
}

// UserState represents a chat's current interaction state
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingNickname UserState = "waiting_nickname"
	StateDrilling        UserState = "drilling"
)

// StateData holds temporary data for a chat's current state
type StateData struct {
	State     UserState
	User      *UserAccount
	ModuleID  string
	MessageID int // For editing messages
}
