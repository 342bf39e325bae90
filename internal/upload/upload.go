package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoFile indicates a request that requires a file did not carry one.
var ErrNoFile = errors.New("upload: no file supplied")

// Storage writes uploaded files into a single directory. Files are
// immutable once written: every upload gets a fresh generated name and an
// existing file is never overwritten.
type Storage struct {
	dir string
}

// NewStorage creates the storage directory if needed and returns a Storage
// rooted at it.
func NewStorage(dir string) (*Storage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload: empty directory")
	}
	if errMkdir := os.MkdirAll(dir, 0755); errMkdir != nil {
		return nil, fmt.Errorf("upload: create dir: %w", errMkdir)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the storage directory path.
func (s *Storage) Dir() string { return s.dir }

// Save writes the full stream to a new file and returns the generated
// file name. The name combines the ingestion time with a random suffix so
// concurrent uploads within the same millisecond cannot collide; O_EXCL
// guards against overwriting even if they somehow did.
func (s *Storage) Save(r io.Reader, originalName string) (string, error) {
	if r == nil {
		return "", ErrNoFile
	}
	name := generateName(originalName)
	target := filepath.Join(s.dir, name)

	out, errOpen := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errOpen != nil {
		return "", fmt.Errorf("upload: create file: %w", errOpen)
	}
	if _, errCopy := io.Copy(out, r); errCopy != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("upload: write file: %w", errCopy)
	}
	if errClose := out.Close(); errClose != nil {
		return "", fmt.Errorf("upload: close file: %w", errClose)
	}
	return name, nil
}

// generateName builds a unique file name from the current time, a random
// suffix and the original extension.
func generateName(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
