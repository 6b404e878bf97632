// Package archive bundles files into ZIP archives and unpacks them again,
// using the DEFLATE implementation from github.com/klauspost/compress.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/textpack/pack"
)

// Create writes a ZIP archive to dst containing each of files, stored under
// its base name.
func Create(dst string, files ...string) (err error) {
	if len(files) == 0 {
		return fmt.Errorf("archive: no files to add: %w", pack.ErrInvalidInput)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	seen := make(map[string]bool)
	for _, name := range files {
		base := filepath.Base(name)
		if seen[base] {
			return fmt.Errorf("archive: duplicate entry %q: %w", base, pack.ErrInvalidInput)
		}
		seen[base] = true
		if err := addFile(zw, name, base); err != nil {
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("archive: %s is not a regular file: %w", path, pack.ErrInvalidInput)
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
	_, err = io.Copy(w, src)
	return err
}

// Extract unpacks the archive src into dir, creating directories as needed,
// and returns the paths it wrote. Entries that would land outside dir are
// rejected with pack.ErrInvalidInput before anything is written.
func Extract(src, dir string) ([]string, error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		if zr != nil {
			// Readable, but an entry name is not local.
			zr.Close()
			return nil, fmt.Errorf("archive: %v: %w", err, pack.ErrInvalidInput)
		}
		return nil, fmt.Errorf("archive: %v: %w", err, pack.ErrMalformedContainer)
	}
	defer zr.Close()

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(zr.File))
	for i, f := range zr.File {
		target, err := entryPath(root, f.Name)
		if err != nil {
			return nil, err
		}
		targets[i] = target
	}

	var written []string
	for i, f := range zr.File {
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targets[i], 0o755); err != nil {
				return written, err
			}
			continue
		}
		if err := extractFile(f, targets[i]); err != nil {
			return written, err
		}
		written = append(written, targets[i])
	}
	return written, nil
}

func entryPath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("archive: entry %q escapes %s: %w", name, root, pack.ErrInvalidInput)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("archive: %s: %v: %w", f.Name, err, pack.ErrMalformedContainer)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("archive: %s: %v: %w", f.Name, err, pack.ErrMalformedContainer)
	}
	return out.Close()
}
