package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// FileStorage defines the contract for the upload backend. Implementations
// persist the file and return a publicly reachable URL or path.
type FileStorage interface {
	Save(ctx context.Context, r io.Reader, fileName string) (string, error)
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type localStorage struct {
	dir       string
	publicURL string
}

// NewLocalStorage stores uploads on the local disk under dir and serves them
// below publicURL (e.g. "/uploads").
func NewLocalStorage(dir, publicURL string) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStorage{dir: dir, publicURL: publicURL}, nil
}

func (s *localStorage) Save(ctx context.Context, r io.Reader, fileName string) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), unsafeNameChars.ReplaceAllString(fileName, "_"))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.publicURL + "/" + name, nil
}
