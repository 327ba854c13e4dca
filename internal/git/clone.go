package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Clone clones url into dest. Missing parent directories of dest are created.
func Clone(ctx context.Context, url, dest string) error {
	if err := CheckGit(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create clone parent: %w", err)
	}
	if err := runGit(ctx, "", "clone", url, dest); err != nil {
		return fmt.Errorf("git clone %s: %w", url, err)
	}
	return nil
}

// InitSubmodules initializes and updates all submodules of the repository at dir.
func InitSubmodules(ctx context.Context, dir string) error {
	if err := CheckGit(); err != nil {
		return err
	}
	if !IsInsideRepoPath(ctx, dir) {
		return fmt.Errorf("%w: %s", ErrNotRepo, dir)
	}
	if err := runGit(ctx, dir, "submodule", "update", "--init", "--recursive"); err != nil {
		return fmt.Errorf("git submodule update: %w", err)
	}
	return nil
}
