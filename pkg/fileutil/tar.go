package fileutil

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxTarEntrySize bounds a single extracted file.
const maxTarEntrySize = 512 << 20

// ExtractTarball unpacks a gzip-compressed package tarball into dest and
// returns the package root: the directory holding manifestName. Archives built
// by `npm pack` keep everything under a single "package/" folder.
func ExtractTarball(archivePath, dest, manifestName string) (string, error) {
	log.Printf("Extracting tarball: %s -> %s", archivePath, dest)
	f, err := os.Open(archivePath)
	if err != nil {
		return "", fmt.Errorf("open tarball: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("read tarball %s: %w", archivePath, err)
	}
	defer gz.Close()

	root := ""
	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read tar archive: %w", err)
		}

		target, err := SafeJoin(dest, header.Name)
		if err != nil {
			return "", err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, header.Size); err != nil {
				return "", err
			}
			if filepath.Base(target) == manifestName && (root == "" || len(target) < len(root)) {
				root = filepath.Dir(target)
			}
		default:
			log.Printf("Skipping tar entry %s (type %c)", header.Name, header.Typeflag)
		}
	}

	if root == "" {
		return "", fmt.Errorf("%s not found in %s", manifestName, archivePath)
	}
	return root, nil
}

func writeEntry(target string, r io.Reader, size int64) error {
	if size > maxTarEntrySize {
		return fmt.Errorf("tar entry %s is too large (%d bytes)", target, size)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.CopyN(out, r, size); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", filepath.Base(target), err)
	}
	return out.Close()
}
