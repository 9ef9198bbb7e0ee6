package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"

	domain "github.com/sovereignhud/sovereign-hud/sovereign/models"
)

var (
	// ValidImageExtensions contains accepted proof photo extensions.
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	// MaxImageSize caps proof photo uploads (10MB).
	MaxImageSize int64 = 10 * 1024 * 1024
)

// RequireFields checks that every named form value is non-empty. Missing
// fields produce a single validation error naming them all.
func RequireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	// Map iteration order varies; keep the message stable.
	sort.Strings(missing)
	return fmt.Errorf("missing required field(s) %s: %w",
		strings.Join(missing, ", "), domain.ErrValidation)
}

// ValidateImageUpload checks extension and size of an uploaded proof
// photo before it is sent to storage.
func ValidateImageUpload(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, allowed := range ValidImageExtensions {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported image type %q: %w", ext, domain.ErrValidation)
	}
	if file.Size > MaxImageSize {
		return fmt.Errorf("image exceeds %d bytes: %w", MaxImageSize, domain.ErrValidation)
	}
	return nil
}
