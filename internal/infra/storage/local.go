package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/rodriguesaradhan-web/kozhigo/internal/core/port"
)

// LocalEvidenceStore persists evidence documents on the local filesystem
// and serves them from a public URL path.
type LocalEvidenceStore struct {
	baseDir    string
	publicPath string
	logger     *zap.Logger
}

// NewLocalEvidenceStore creates the base directory if needed.
func NewLocalEvidenceStore(baseDir, publicPath string, logger *zap.Logger) (*LocalEvidenceStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create evidence directory: %w", err)
	}

	return &LocalEvidenceStore{
		baseDir:    baseDir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		logger:     logger,
	}, nil
}

// BaseDir returns the directory evidence files are written to.
func (s *LocalEvidenceStore) BaseDir() string {
	return s.baseDir
}

// Store writes the evidence bytes under the given key and returns the
// public URL path the file is served from. Keys may contain forward
// slashes to group files by purpose.
func (s *LocalEvidenceStore) Store(ctx context.Context, key string, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned := path.Clean("/" + key)
	if cleaned == "/" || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid evidence key %q", key)
	}

	target := filepath.Join(s.baseDir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create evidence subdirectory: %w", err)
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}

	s.logger.Debug("evidence stored",
		zap.String("key", cleaned),
		zap.Int("size_bytes", len(data)),
		zap.String("mime_type", mimeType),
	)

	return s.publicPath + cleaned, nil
}

var _ port.EvidenceStore = (*LocalEvidenceStore)(nil)
