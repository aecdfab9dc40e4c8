package picgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink is an interface for persisting generated image bytes. The default
// is FileSink; implementations can wrap cloud storage clients (GCS, S3)
// with this interface instead.
type Sink interface {
	// SaveFile writes image data to path and returns the location of the
	// saved file (a filesystem path or URL, depending on the backend).
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// FileSink writes generated images to the local filesystem.
//
// Writes go through a temp file in the destination directory followed by a
// rename, so a failed or cancelled generation never leaves a partial file
// at the output path.
type FileSink struct{}

// NewFileSink creates a local filesystem sink.
func NewFileSink() *FileSink { return &FileSink{} }

// SaveFile writes data to path, creating parent directories as needed.
func (s *FileSink) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing image data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("moving image into place: %w", err)
	}

	return path, nil
}

// GetMIMEType returns the image MIME type implied by a file extension.
func GetMIMEType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// ExtensionFromMIME returns a file extension for common image MIME types.
func ExtensionFromMIME(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
