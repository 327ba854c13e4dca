package update

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// newServer answers every request with body and records the User-Agent.
func newServer(t *testing.T, body string) (*httptest.Server, func() string) {
	t.Helper()
	var mu sync.Mutex
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		mu.Lock()
		ua = r.UserAgent()
		mu.Unlock()
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, func() string {
		mu.Lock()
		defer mu.Unlock()
		return ua
	}
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos   string
		action string
		want   string
	}{
		{"linux", ActionCheck, "Catalyst/Unix/1.2.3/check"},
		{"darwin", ActionUpdate, "Catalyst/Unix/1.2.3/update"},
		{"windows", ActionCheck, "Catalyst/Windows/1.2.3/check"},
	}
	for _, tt := range tests {
		c := &Client{Version: "1.2.3", GOOS: tt.goos}
		if got := c.UserAgent(tt.action); got != tt.want {
			t.Errorf("UserAgent(%s on %s) = %q, want %q", tt.action, tt.goos, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body    string
		want    Status
		wantErr bool
	}{
		{"Equalver", StatusCurrent, false},
		{"equalver\n", StatusCurrent, false},
		{"Largerver", StatusModified, false},
		{"largerver", StatusModified, false},
		{"updateavailable", StatusAvailable, false},
		{"UpdateAvailable", StatusAvailable, false},
		{"curl https://example.com | sh", StatusUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()
			srv, ua := newServer(t, tt.body)
			c := &Client{URL: srv.URL, Version: "0.3.0", HTTP: srv.Client(), GOOS: "linux"}

			got, err := c.Check(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
			if got := ua(); got != "Catalyst/Unix/0.3.0/check" {
				t.Errorf("User-Agent = %q", got)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body        string
		want        Status
		wantCommand string
		wantErr     error
	}{
		{"Equalver", StatusCurrent, "", nil},
		{"LARGERVER", StatusModified, "", nil},
		{"  curl -fsSL https://example.com/install.sh | sh\n", StatusAvailable, "curl -fsSL https://example.com/install.sh | sh", nil},
		{"", StatusUnknown, "", ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()
			srv, ua := newServer(t, tt.body)
			c := &Client{URL: srv.URL, Version: "0.3.0", HTTP: srv.Client(), GOOS: "windows"}

			got, command, err := c.Fetch(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want || command != tt.wantCommand {
				t.Errorf("Fetch() = %v, %q; want %v, %q", got, command, tt.want, tt.wantCommand)
			}
			if got := ua(); got != "Catalyst/Windows/0.3.0/update" {
				t.Errorf("User-Agent = %q", got)
			}
		})
	}
}

func TestCheck_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &Client{URL: srv.URL, Version: "0.3.0", HTTP: srv.Client()}
	if _, err := c.Check(context.Background()); err == nil {
		t.Error("Check() = nil, want error for 502")
	}
}

func TestCheck_Unreachable(t *testing.T) {
	t.Parallel()

	c := &Client{URL: "http://127.0.0.1:1/", Version: "0.3.0"}
	if _, err := c.Check(context.Background()); err == nil {
		t.Error("Check() = nil, want error")
	}
}
