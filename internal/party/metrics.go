package party

import "github.com/five82/partysync/internal/metrics"

const subsystem = "party"

var (
	outboundRequests = metrics.NewCounter(
		"outbound_requests_total",
		subsystem,
		"Requests handed to the message bus",
		[]string{"request", "result"},
	)
	emittedEvents = metrics.NewCounter(
		"events_total",
		subsystem,
		"UI events fired",
		[]string{"kind"},
	)
	staleReplies = metrics.NewCounter(
		"stale_replies_total",
		subsystem,
		"Replies ignored because they belong to superseded requests",
		[]string{"request"},
	)
	criteriaSends = metrics.NewCounter(
		"criteria_sends_total",
		subsystem,
		"SetOptions messages sent",
		[]string{"kind"},
	)
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func sendKind(d OptionsDelta) string {
	if d.Overwrite {
		return "overwrite"
	}
	return "delta"
}
