package party

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Identity is a stable player account identifier.
type Identity uint64

// PartyID identifies a coordinator party object. Zero means no real party.
type PartyID uint64

// LobbyID identifies an in-progress match lobby.
type LobbyID uint64

// MatchGroup is a dense enum of the matchmaking queues a party can join.
type MatchGroup int

const (
	MatchGroupMvMPractice MatchGroup = iota
	MatchGroupMvMMannUp
	MatchGroupLadder6v6
	MatchGroupLadder9v9
	MatchGroupLadder12v12
	MatchGroupCasual12v12
	NumMatchGroups
)

var matchGroupNames = [NumMatchGroups]string{
	MatchGroupMvMPractice: "mvm_practice",
	MatchGroupMvMMannUp:   "mvm_mannup",
	MatchGroupLadder6v6:   "ladder_6v6",
	MatchGroupLadder9v9:   "ladder_9v9",
	MatchGroupLadder12v12: "ladder_12v12",
	MatchGroupCasual12v12: "casual_12v12",
}

// Valid reports whether g is inside the enum range.
func (g MatchGroup) Valid() bool {
	return g >= 0 && g < NumMatchGroups
}

func (g MatchGroup) String() string {
	if !g.Valid() {
		return fmt.Sprintf("match_group(%d)", int(g))
	}
	return matchGroupNames[g]
}

// ParseMatchGroup is the inverse of MatchGroup.String.
func ParseMatchGroup(s string) (MatchGroup, error) {
	for g, name := range matchGroupNames {
		if name == s {
			return MatchGroup(g), nil
		}
	}
	return 0, fmt.Errorf("unknown match group %q", s)
}

func (g MatchGroup) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid match group %d", int(g))
	}
	return []byte(matchGroupNames[g]), nil
}

func (g *MatchGroup) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MatchGroups returns every valid match group in enum order.
func MatchGroups() []MatchGroup {
	out := make([]MatchGroup, 0, NumMatchGroups)
	for g := MatchGroup(0); g < NumMatchGroups; g++ {
		out = append(out, g)
	}
	return out
}

// GroupCriteria is the party-wide search configuration authored by the leader.
type GroupCriteria struct {
	CasualMaps      map[uint32]bool `json:"casual_maps,omitempty"`
	MvMMissions     map[string]bool `json:"mvm_missions,omitempty"`
	MvMTourIndex    int32           `json:"mvm_tour_index"`
	LateJoinOK      bool            `json:"late_join_ok"`
	CustomPingLimit uint32          `json:"custom_ping_limit"`
}

// Clone returns a deep copy.
func (c GroupCriteria) Clone() GroupCriteria {
	c.CasualMaps = maps.Clone(c.CasualMaps)
	c.MvMMissions = maps.Clone(c.MvMMissions)
	return c
}

// PlayerCriteria is per-player search configuration.
type PlayerCriteria struct {
	SquadSurplus bool   `json:"squad_surplus"`
	HasTicket    bool   `json:"has_ticket"`
	Region       string `json:"region,omitempty"`
}

// Clone returns a copy.
func (c PlayerCriteria) Clone() PlayerCriteria { return c }

// UIState is the leader's menu position, mirrored to followers.
type UIState struct {
	MenuStep   int32      `json:"menu_step"`
	MatchGroup MatchGroup `json:"match_group"`
}

// Clone returns a copy.
func (s UIState) Clone() UIState { return s }

// Member is one player in a party.
type Member struct {
	Identity Identity       `json:"identity"`
	Online   bool           `json:"online"`
	Criteria PlayerCriteria `json:"criteria"`
}

// PendingKind distinguishes invites from join requests.
type PendingKind int

const (
	PendingInvite PendingKind = iota
	PendingJoinRequest
)

func (k PendingKind) String() string {
	if k == PendingJoinRequest {
		return "join_request"
	}
	return "invite"
}

func (k PendingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PendingKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "invite":
		*k = PendingInvite
	case "join_request":
		*k = PendingJoinRequest
	default:
		return fmt.Errorf("unknown pending kind %q", text)
	}
	return nil
}

// PendingPlayer is a non-member attached to the party: someone the party
// invited (PendingInvite) or someone asking to join it (PendingJoinRequest).
type PendingPlayer struct {
	Identity Identity    `json:"identity"`
	Kind     PendingKind `json:"kind"`
}

// Snapshot is the coordinator's view of a party at a point in time, or the
// locally synthesized solo party when PartyID is zero.
type Snapshot struct {
	PartyID       PartyID              `json:"party_id"`
	Members       []Member             `json:"members"`
	Leader        Identity             `json:"leader"`
	GroupCriteria GroupCriteria        `json:"group_criteria"`
	UIState       UIState              `json:"ui_state"`
	Queued        [NumMatchGroups]bool `json:"queued"`
	StandbyQueued bool                 `json:"standby_queued"`
	LobbyID       LobbyID              `json:"lobby_id"`
	Pending       []PendingPlayer      `json:"pending"`
}

// IsReal reports whether the snapshot describes a coordinator party.
func (s Snapshot) IsReal() bool {
	return s.PartyID != 0
}

// Member returns the member with the given identity.
func (s Snapshot) Member(id Identity) (Member, bool) {
	i, ok := slices.BinarySearchFunc(s.Members, id, func(m Member, id Identity) int {
		return cmp.Compare(m.Identity, id)
	})
	if !ok {
		return Member{}, false
	}
	return s.Members[i], true
}

// IsMember reports whether id belongs to the party.
func (s Snapshot) IsMember(id Identity) bool {
	_, ok := s.Member(id)
	return ok
}

// PendingOf returns the sorted identities of pending players of one kind.
func (s Snapshot) PendingOf(kind PendingKind) []Identity {
	var out []Identity
	for _, p := range s.Pending {
		if p.Kind == kind {
			out = append(out, p.Identity)
		}
	}
	return out
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	s.Members = slices.Clone(s.Members)
	s.Pending = slices.Clone(s.Pending)
	s.GroupCriteria = s.GroupCriteria.Clone()
	return s
}

// Invitation is a coordinator invite object addressed to us: another party
// inviting us (PendingInvite) or our own request to join another party
// (PendingJoinRequest).
type Invitation struct {
	PartyID PartyID     `json:"party_id"`
	Sender  Identity    `json:"sender"`
	Kind    PendingKind `json:"kind"`
	Members []Identity  `json:"members,omitempty"`
}

// JoinRequestMode is the user's policy for incoming join requests.
type JoinRequestMode int

const (
	OpenToFriends JoinRequestMode = iota
	FriendsCanRequestToJoin
	ClosedToFriends
)

var joinRequestModeNames = []string{
	OpenToFriends:           "open",
	FriendsCanRequestToJoin: "request",
	ClosedToFriends:         "closed",
}

func (m JoinRequestMode) String() string {
	if m < 0 || int(m) >= len(joinRequestModeNames) {
		return fmt.Sprintf("join_request_mode(%d)", int(m))
	}
	return joinRequestModeNames[m]
}

// ParseJoinRequestMode is the inverse of JoinRequestMode.String.
func ParseJoinRequestMode(s string) (JoinRequestMode, error) {
	for i, name := range joinRequestModeNames {
		if name == s {
			return JoinRequestMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown join request mode %q", s)
}

// Next cycles through the modes in declaration order.
func (m JoinRequestMode) Next() JoinRequestMode {
	return (m + 1) % JoinRequestMode(len(joinRequestModeNames))
}
