// Package update talks to the release endpoint used by "cly update".
//
// Requests are POSTs whose User-Agent identifies the client as
// Catalyst/<Unix|Windows>/<version>/<action>. The endpoint answers with a
// plain-text body:
//
//	Equalver         the client is current
//	Largerver        the client is newer than the latest release (custom build)
//	updateavailable  a newer release exists (check only)
//	<command>        the shell command that installs the latest release (update only)
//
// Keywords are matched case-insensitively. The install command is returned
// to the caller and never run by this package.
package update

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

// Status is the endpoint's verdict.
type Status int

const (
	StatusUnknown Status = iota
	StatusCurrent
	StatusAvailable
	StatusModified
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "up to date"
	case StatusAvailable:
		return "update available"
	case StatusModified:
		return "modified build"
	default:
		return "unknown"
	}
}

// Actions reported in the User-Agent.
const (
	ActionCheck  = "check"
	ActionUpdate = "update"
)

// maxBody bounds the response read from the endpoint.
const maxBody = 64 << 10

// ErrEmptyResponse is returned when the endpoint answers with no body.
var ErrEmptyResponse = errors.New("empty response from update server")

// Client queries the update endpoint.
type Client struct {
	URL     string
	Version string
	HTTP    *http.Client
	GOOS    string // defaults to runtime.GOOS
}

// UserAgent returns the User-Agent sent for action.
func (c *Client) UserAgent(action string) string {
	goos := c.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	osName := "Unix"
	if goos == "windows" {
		osName = "Windows"
	}
	return fmt.Sprintf("Catalyst/%s/%s/%s", osName, c.Version, action)
}

// Check asks whether a newer release exists.
func (c *Client) Check(ctx context.Context) (Status, error) {
	body, err := c.post(ctx, ActionCheck)
	if err != nil {
		return StatusUnknown, err
	}
	switch {
	case strings.EqualFold(body, "Equalver"):
		return StatusCurrent, nil
	case strings.EqualFold(body, "Largerver"):
		return StatusModified, nil
	case strings.EqualFold(body, "updateavailable"):
		return StatusAvailable, nil
	default:
		return StatusUnknown, fmt.Errorf("unexpected response from update server: %q", truncate(body))
	}
}

// Fetch asks for the install command. The command is only non-empty when
// the status is StatusAvailable.
func (c *Client) Fetch(ctx context.Context) (Status, string, error) {
	body, err := c.post(ctx, ActionUpdate)
	if err != nil {
		return StatusUnknown, "", err
	}
	switch {
	case body == "":
		return StatusUnknown, "", ErrEmptyResponse
	case strings.EqualFold(body, "Equalver"):
		return StatusCurrent, "", nil
	case strings.EqualFold(body, "Largerver"):
		return StatusModified, "", nil
	default:
		return StatusAvailable, body, nil
	}
}

func (c *Client) post(ctx context.Context, action string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.UserAgent(action))

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("contact update server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read update response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("update server returned %s", resp.Status)
	}
	return strings.TrimSpace(string(data)), nil
}

func truncate(s string) string {
	const limit = 80
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
