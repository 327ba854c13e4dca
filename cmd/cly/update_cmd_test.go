package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/catalyst/internal/config"
)

func updateServer(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestUpdateCheckCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want string
	}{
		{"Equalver", "is up to date"},
		{"LARGERVER", "newer than the latest release"},
		{"updateavailable", "An update is available"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()
			ctx, buf := testContext(t)
			config.FromContext(ctx).UpdateURL = updateServer(t, tt.body)

			if err := execute(ctx, newUpdateCmd(), "check"); err != nil {
				t.Fatalf("update check error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestUpdateRunCmd_Yes(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	marker := filepath.Join(t.TempDir(), "installed")
	ctx, buf := testContext(t)
	cfg := config.FromContext(ctx)
	cfg.UpdateURL = updateServer(t, "touch "+marker)
	cfg.Shell.Program = "sh"

	if err := execute(ctx, newUpdateCmd(), "run", "--yes"); err != nil {
		t.Fatalf("update run error = %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("install command did not run: %v", err)
	}
	if !strings.Contains(buf.String(), "touch "+marker) {
		t.Errorf("output = %q, want the command printed first", buf.String())
	}
}

func TestUpdateRunCmd_CurrentDoesNothing(t *testing.T) {
	t.Parallel()

	ctx, buf := testContext(t)
	config.FromContext(ctx).UpdateURL = updateServer(t, "equalver")

	if err := execute(ctx, newUpdateCmd(), "run", "--yes"); err != nil {
		t.Fatalf("update run error = %v", err)
	}
	if strings.Contains(buf.String(), "Install command") {
		t.Errorf("output = %q, want no install command", buf.String())
	}
}
