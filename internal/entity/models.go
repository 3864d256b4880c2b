package entity

import "time"

type Role string

// Role of a chat message as understood by the completion provider
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole maps a client supplied role string onto Role.
// Unknown roles report ok == false so callers can drop the message.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RoleAssistant, RoleSystem:
		return r, true
	default:
		return "", false
	}
}

type ExchangeOutcome string

const (
	ExchangeOutcomeSuccess     ExchangeOutcome = "success"
	ExchangeOutcomeRateLimited ExchangeOutcome = "rate_limited"
	ExchangeOutcomeFailed      ExchangeOutcome = "failed"
)

// Exchange is one dispatched completion call as recorded in the journal
type Exchange struct {
	ID             string
	RequestID      string
	MessageCount   int // messages received after normalization
	SubmittedCount int // messages sent, system prompt included
	Outcome        ExchangeOutcome
	ContentLength  int
	CitationCount  int
	Duration       time.Duration
	CreatedAt      time.Time
}
