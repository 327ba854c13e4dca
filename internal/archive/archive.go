// Package archive packages and extracts zip archives for hooks.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned when an archive entry would extract outside the destination.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// Zip writes the given files and directories into a new archive at dest.
// Directories are added recursively. Entry names are relative to the parent
// of each path, so Zip([]string{"build/out"}, ...) stores "out/...".
// Missing parent directories of dest are created.
func Zip(paths []string, dest string) (err error) {
	if len(paths) == 0 {
		return errors.New("zip: no paths given")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("zip: create parent: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("zip: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	for _, p := range paths {
		if err := addPath(zw, filepath.Clean(p)); err != nil {
			zw.Close()
			return fmt.Errorf("zip %s: %w", p, err)
		}
	}
	return zw.Close()
}

func addPath(zw *zip.Writer, root string) error {
	base := filepath.Dir(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			hdr, err := zip.FileInfoHeader(info)
			if err != nil {
				return err
			}
			hdr.Name = name + "/"
			_, err = zw.CreateHeader(hdr)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		hdr, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		hdr.Name = name
		hdr.Method = zip.Deflate

		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
}

// Unzip extracts the archive at src into dest. All directory entries are
// created before any file is written; parents of file entries are created
// as needed.
func Unzip(src, dest string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("unzip: %w", err)
	}

	var files []*zip.File
	for _, zf := range zr.File {
		target, err := entryPath(dest, zf.Name)
		if err != nil {
			return err
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("unzip: %w", err)
			}
			continue
		}
		files = append(files, zf)
	}

	for _, zf := range files {
		target, _ := entryPath(dest, zf.Name)
		if err := extractFile(zf, target); err != nil {
			return fmt.Errorf("unzip %s: %w", zf.Name, err)
		}
	}
	return nil
}

func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func extractFile(zf *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := zf.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
