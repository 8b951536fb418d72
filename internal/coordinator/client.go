package coordinator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/five82/partysync/internal/party"
)

// Fetcher reads coordinator state. It is implemented by *Client and can be
// used for testing.
type Fetcher interface {
	FetchParty(ctx context.Context, since uint64) (PartyResponse, error)
	FetchInvitations(ctx context.Context) ([]party.Invitation, error)
	FetchFriends(ctx context.Context) ([]party.Identity, error)
}

// Submitter delivers party requests.
type Submitter interface {
	Submit(ctx context.Context, requestID string, req party.Request) error
}

// Ensure Client implements both at compile time.
var (
	_ Fetcher   = (*Client)(nil)
	_ Submitter = (*Client)(nil)
)

// Client talks to the coordinator HTTP API on behalf of one player.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	player    party.Identity
}

const (
	defaultBaseURL   = "127.0.0.1:7600"
	defaultUserAgent = "partysync/0.1"
	requestTimeout   = 5 * time.Second

	headerPlayer    = "X-Player-ID"
	headerRequestID = "X-Request-ID"
)

// NewClient builds a Client for base, a URL or host:port value.
func NewClient(base string, player party.Identity) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		player:    player,
	}, nil
}

// FetchParty retrieves our party together with chat lines and error codes
// newer than the since cursor.
func (c *Client) FetchParty(ctx context.Context, since uint64) (PartyResponse, error) {
	if c == nil {
		return PartyResponse{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if since > 0 {
		values.Set("since", strconv.FormatUint(since, 10))
	}
	rel := &url.URL{Path: "/api/party", RawQuery: values.Encode()}
	var payload PartyResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, nil, &payload); err != nil {
		return PartyResponse{}, err
	}
	return payload, nil
}

// FetchInvitations retrieves the invite objects addressed to us.
func (c *Client) FetchInvitations(ctx context.Context) ([]party.Invitation, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload InvitationListResponse
	if err := c.do(ctx, http.MethodGet, "/api/invitations", &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// FetchFriends retrieves our friend list.
func (c *Client) FetchFriends(ctx context.Context) ([]party.Identity, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload FriendListResponse
	if err := c.do(ctx, http.MethodGet, "/api/friends", &payload); err != nil {
		return nil, err
	}
	return payload.Friends, nil
}

// Submit posts req to /api/requests/{name}. A rejection by the coordinator
// (an ok=false body or a 4xx status) is returned as *RequestError. Server
// failures are plain errors.
func (c *Client) Submit(ctx context.Context, requestID string, req party.Request) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s: %w", req.RequestName(), err)
	}
	rel := &url.URL{Path: "/api/requests/" + url.PathEscape(req.RequestName())}
	header := http.Header{}
	if requestID != "" {
		header.Set(headerRequestID, requestID)
	}
	var result RequestResult
	err = c.doURL(ctx, http.MethodPost, rel, header, body, &result)
	var status *statusError
	switch {
	case errors.As(err, &status) && status.rejected():
		return status.requestError(req.RequestName())
	case err != nil:
		return fmt.Errorf("%s: %w", req.RequestName(), err)
	case !result.OK:
		return &RequestError{Request: req.RequestName(), Code: result.Code, Message: result.Error}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, nil, nil, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, header http.Header, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(headerPlayer, strconv.FormatUint(uint64(c.player), 10))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		serr := &statusError{path: rel.String(), status: resp.StatusCode}
		// Rejections carry a RequestResult body when the coordinator has one.
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&serr.result)
		return serr
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type statusError struct {
	path   string
	status int
	result RequestResult
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.path, e.status)
}

func (e *statusError) rejected() bool {
	return e.status >= 400 && e.status < 500
}

func (e *statusError) requestError(name string) *RequestError {
	msg := strings.TrimSpace(e.result.Error)
	if msg == "" {
		msg = http.StatusText(e.status)
	}
	return &RequestError{Request: name, Status: e.status, Code: e.result.Code, Message: msg}
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse coordinator %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
