package party

import "github.com/five82/partysync/internal/criteria"

// Request is an outbound coordinator request.
type Request interface {
	RequestName() string
}

// OptionsDelta carries criteria changes relative to what was last sent.
type OptionsDelta struct {
	Overwrite      bool                            `json:"overwrite,omitempty"`
	UIState        *criteria.Patch[UIState]        `json:"ui_state,omitempty"`
	GroupCriteria  *criteria.Patch[GroupCriteria]  `json:"group_criteria,omitempty"`
	PlayerCriteria *criteria.Patch[PlayerCriteria] `json:"player_criteria,omitempty"`
}

// Empty reports whether the delta carries no field.
func (d OptionsDelta) Empty() bool {
	return d.UIState == nil && d.GroupCriteria == nil && d.PlayerCriteria == nil
}

type SetOptions struct {
	PartyID PartyID      `json:"party_id"`
	Delta   OptionsDelta `json:"delta"`
}

type QueueForMatch struct {
	PartyID      PartyID       `json:"party_id"`
	MatchGroup   MatchGroup    `json:"match_group"`
	FinalOptions *OptionsDelta `json:"final_options,omitempty"`
}

type QueueForStandby struct {
	PartyID      PartyID       `json:"party_id"`
	LobbyID      LobbyID       `json:"lobby_id"`
	FinalOptions *OptionsDelta `json:"final_options,omitempty"`
}

type RemoveFromQueue struct {
	PartyID    PartyID    `json:"party_id"`
	MatchGroup MatchGroup `json:"match_group"`
}

type RemoveFromStandbyQueue struct {
	PartyID PartyID `json:"party_id"`
}

// InvitePlayer invites Target to our party. ExpectingExistingRequest is set
// when accepting Target's join request.
type InvitePlayer struct {
	Target                   Identity `json:"target"`
	PartyID                  PartyID  `json:"party_id,omitempty"`
	ExpectingExistingRequest bool     `json:"expecting_existing_request,omitempty"`
}

// RequestJoinPlayer asks to join Target's party. ExpectingExistingInvite is
// set when accepting Target's invite.
type RequestJoinPlayer struct {
	Target                  Identity `json:"target"`
	CurrentPartyID          PartyID  `json:"current_party_id,omitempty"`
	ExpectingExistingInvite bool     `json:"expecting_existing_invite,omitempty"`
}

// ClearPendingPlayer removes an invite or join request attached to our party.
type ClearPendingPlayer struct {
	Identity Identity `json:"identity"`
}

// ClearOtherPartyRequest removes an invite or join request attached to
// another party.
type ClearOtherPartyRequest struct {
	PartyID PartyID `json:"party_id"`
}

type LeaveParty struct {
	PartyID PartyID `json:"party_id"`
}

type KickMember struct {
	PartyID PartyID  `json:"party_id"`
	Target  Identity `json:"target"`
}

type PromoteLeader struct {
	PartyID PartyID  `json:"party_id"`
	Target  Identity `json:"target"`
}

type SendChat struct {
	PartyID PartyID `json:"party_id"`
	Text    string  `json:"text"`
}

func (SetOptions) RequestName() string             { return "set_options" }
func (QueueForMatch) RequestName() string          { return "queue_for_match" }
func (QueueForStandby) RequestName() string        { return "queue_for_standby" }
func (RemoveFromQueue) RequestName() string        { return "remove_from_queue" }
func (RemoveFromStandbyQueue) RequestName() string { return "remove_from_standby_queue" }
func (InvitePlayer) RequestName() string           { return "invite_player" }
func (RequestJoinPlayer) RequestName() string      { return "request_join_player" }
func (ClearPendingPlayer) RequestName() string     { return "clear_pending_player" }
func (ClearOtherPartyRequest) RequestName() string { return "clear_other_party_request" }
func (LeaveParty) RequestName() string             { return "leave_party" }
func (KickMember) RequestName() string             { return "kick_member" }
func (PromoteLeader) RequestName() string          { return "promote_leader" }
func (SendChat) RequestName() string               { return "send_chat" }
