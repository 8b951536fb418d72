package coordinator

import (
	"fmt"
	"time"

	"github.com/five82/partysync/internal/party"
)

const coordinatorTimestampLayout = "2006-01-02 15:04:05"

// PartyResponse mirrors /api/party. Party is nil when we are not in one.
type PartyResponse struct {
	Party  *PartyPayload `json:"party"`
	Chat   []ChatPayload `json:"chat"`
	Errors []int         `json:"errors"`
	Next   uint64        `json:"next"`
}

// PartyPayload is the coordinator's party object.
type PartyPayload struct {
	ID            uint64                `json:"id"`
	Leader        uint64                `json:"leader"`
	Members       []party.Member        `json:"members"`
	GroupCriteria party.GroupCriteria   `json:"group_criteria"`
	UIState       party.UIState         `json:"ui_state"`
	Queued        []party.MatchGroup    `json:"queued"`
	StandbyQueued bool                  `json:"standby_queued"`
	LobbyID       uint64                `json:"lobby_id"`
	Pending       []party.PendingPlayer `json:"pending"`
	UpdatedAt     string                `json:"updated_at"`
}

// Snapshot converts the payload. A nil payload is the empty snapshot, which
// the party client treats as no party.
func (p *PartyPayload) Snapshot() party.Snapshot {
	if p == nil {
		return party.Snapshot{}
	}
	snap := party.Snapshot{
		PartyID:       party.PartyID(p.ID),
		Leader:        party.Identity(p.Leader),
		Members:       p.Members,
		GroupCriteria: p.GroupCriteria,
		UIState:       p.UIState,
		StandbyQueued: p.StandbyQueued,
		LobbyID:       party.LobbyID(p.LobbyID),
		Pending:       p.Pending,
	}
	for _, g := range p.Queued {
		if g.Valid() {
			snap.Queued[g] = true
		}
	}
	return snap.Clone()
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (p *PartyPayload) ParsedUpdatedAt() time.Time {
	if p == nil {
		return time.Time{}
	}
	return parseTime(p.UpdatedAt)
}

// ChatPayload is one party chat line.
type ChatPayload struct {
	From      uint64 `json:"from"`
	Text      string `json:"text"`
	Timestamp string `json:"ts"`
}

// Message converts the payload.
func (c ChatPayload) Message() party.ChatMessage {
	return party.ChatMessage{From: party.Identity(c.From), Text: c.Text, At: parseTime(c.Timestamp)}
}

// InvitationListResponse mirrors /api/invitations.
type InvitationListResponse struct {
	Items []party.Invitation `json:"items"`
}

// FriendListResponse mirrors /api/friends.
type FriendListResponse struct {
	Friends []party.Identity `json:"friends"`
}

// RequestResult is the body of a /api/requests reply.
type RequestResult struct {
	OK    bool   `json:"ok"`
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// RequestError is a request the coordinator refused.
type RequestError struct {
	Request string
	Status  int
	Code    int
	Message string
}

func (e *RequestError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s rejected (code %d): %s", e.Request, e.Code, e.Message)
	}
	return fmt.Sprintf("%s rejected: %s", e.Request, e.Message)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(coordinatorTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
