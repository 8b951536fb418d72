package party

//go:generate mockgen -package=party -destination=./mocks_test.go -source=./interface.go

// Reply is the coordinator's acknowledgment of a request.
type Reply struct {
	Err error
}

// ReplyFunc receives the reply to a request. It is invoked on the same
// goroutine that drives the Client.
type ReplyFunc func(Reply)

// MessageBus delivers requests to the coordinator.
type MessageBus interface {
	// Send enqueues req and returns immediately. A non-nil error means the
	// request was not enqueued and no reply will follow. onReply may be nil
	// for requests the coordinator does not acknowledge.
	Send(req Request, onReply ReplyFunc) error
}

// PreferenceStore persists user preferences.
type PreferenceStore interface {
	JoinRequestMode() JoinRequestMode
	IgnoreInvites() bool
	SetJoinRequestMode(JoinRequestMode) error
	SetIgnoreInvites(bool) error
}

// Relationships answers social-graph questions about other players.
type Relationships interface {
	IsFriend(id Identity) bool
}
