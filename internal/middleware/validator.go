package middleware

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Upload validation and sanitization utilities

// MaxUploadBytes caps the accepted image size; photos beyond this are
// almost certainly not phone camera shots.
const MaxUploadBytes = 20 << 20 // 20 MiB

// ValidateUpload checks the basic shape of an uploaded image before it
// reaches storage or the model.
func ValidateUpload(filename string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("uploaded file is empty")
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("uploaded file exceeds %d bytes", int64(MaxUploadBytes))
	}
	return ValidateFilename(filename)
}

// ValidateFilename rejects filenames that could escape the object key
// space or smuggle control characters.
func ValidateFilename(name string) error {
	if name == "" {
		return nil // extension defaulting handles the nameless case
	}
	cleaned := filepath.Clean(name)
	if strings.Contains(cleaned, "..") {
		return fmt.Errorf("path traversal detected in filename")
	}
	for _, bad := range []string{"/", "\\", "\n", "\r", "\x00"} {
		if strings.Contains(name, bad) {
			return fmt.Errorf("invalid characters in filename")
		}
	}
	return nil
}
