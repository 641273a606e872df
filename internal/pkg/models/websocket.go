package models

import (
	"encoding/json"
	"time"
)

// Role is the subscriber role of a socket client
type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleWorker
}

// GroupEveryone addresses every connected client
const GroupEveryone = "everyone"

// IDGroup is the group a single identity joins
func IDGroup(id string) string {
	return id
}

// RoleGroup is the group every client of a role joins
func RoleGroup(role Role) string {
	return string(role)
}

// ChannelEvent is one real-time event addressed to a set of groups
type ChannelEvent struct {
	Groups     []string        `json:"groups"`
	Event      string          `json:"event"`
	Payload    json.RawMessage `json:"payload"`
	BookingID  string          `json:"bookingId,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// WSMessage is the frame written to socket clients
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
