// Package coordinator provides an HTTP client for the matchmaking
// coordinator API.
//
// # API Endpoints
//
//   - GET /api/party?since=N: our party object (null when solo), plus chat
//     lines and error codes newer than cursor N
//   - GET /api/invitations: invites to other parties and our outstanding
//     join requests
//   - GET /api/friends: our friend list
//   - POST /api/requests/{name}: one party request, JSON-encoded
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: partysync/0.1
//   - Identify the player with X-Player-ID
//   - Have a 5-second timeout
//
// POST requests additionally carry X-Request-ID so the coordinator can
// deduplicate retries. The reply body is a RequestResult; a request that is
// refused, either with ok=false or a 4xx/5xx status, surfaces as
// *RequestError carrying the coordinator's error code.
//
// # Type System
//
// Payloads reuse the party package's JSON shapes. Match groups and pending
// kinds travel as names ("casual_12v12", "join_request"). PartyPayload
// converts to a party.Snapshot; a nil payload converts to the empty snapshot,
// which the party client treats as no party.
//
// Timestamps accept RFC3339Nano, RFC3339 and "2006-01-02 15:04:05" in local
// time; anything else parses to the zero time.
//
// # Design Rationale
//
//   - No caching (the poller handles refresh cadence)
//   - No retries (the bus and the app decide retry policy)
//   - No streaming (snapshot polling is sufficient)
package coordinator
