package party

// MemoryPreferences is a PreferenceStore without persistence.
type MemoryPreferences struct {
	Mode   JoinRequestMode
	Ignore bool
}

func (p *MemoryPreferences) JoinRequestMode() JoinRequestMode { return p.Mode }
func (p *MemoryPreferences) IgnoreInvites() bool              { return p.Ignore }

func (p *MemoryPreferences) SetJoinRequestMode(m JoinRequestMode) error {
	p.Mode = m
	return nil
}

func (p *MemoryPreferences) SetIgnoreInvites(ignore bool) error {
	p.Ignore = ignore
	return nil
}

// FriendSet is a Relationships backed by a set of identities.
type FriendSet map[Identity]struct{}

// NewFriendSet builds a FriendSet from ids.
func NewFriendSet(ids ...Identity) FriendSet {
	s := make(FriendSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s FriendSet) IsFriend(id Identity) bool {
	_, ok := s[id]
	return ok
}
