package git

import (
	"errors"
	"testing"
)

func TestCheckGit_Available(t *testing.T) {
	t.Parallel()
	requireGit(t)
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil", err)
	}
}

func TestErrGitNotFound_Sentinel(t *testing.T) {
	t.Parallel()
	if !errors.Is(ErrGitNotFound, ErrGitNotFound) {
		t.Error("ErrGitNotFound should match itself with errors.Is")
	}
}

func TestGitArgs(t *testing.T) {
	t.Parallel()

	if got := gitArgs("", []string{"status"}); len(got) != 1 || got[0] != "status" {
		t.Errorf("gitArgs(\"\") = %v, want [status]", got)
	}
	got := gitArgs("/repo", []string{"status"})
	want := []string{"-C", "/repo", "status"}
	if len(got) != len(want) {
		t.Fatalf("gitArgs(/repo) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("gitArgs(/repo)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
