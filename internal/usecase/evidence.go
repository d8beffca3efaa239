package usecase

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const maxEvidenceSize = 5 * 1024 * 1024

var allowedEvidenceTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// EvidenceFile is an uploaded evidence document pending validation.
type EvidenceFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// validateEvidence enforces the accepted image types and the size cap
// before anything is persisted.
func validateEvidence(file EvidenceFile) error {
	if len(file.Data) == 0 {
		return fmt.Errorf("%w: evidence file is required", ErrValidation)
	}
	if int64(len(file.Data)) > maxEvidenceSize {
		return fmt.Errorf("%w: evidence file exceeds 5MB limit", ErrValidation)
	}
	if _, ok := allowedEvidenceTypes[file.MIMEType]; !ok {
		return fmt.Errorf("%w: evidence must be a jpeg, png, gif, or webp image", ErrValidation)
	}
	return nil
}

// evidenceKey builds the storage key for an evidence file, namespaced by
// purpose and owner with a timestamp to avoid collisions.
func evidenceKey(prefix, owner string, file EvidenceFile, at time.Time) string {
	name := filepath.Base(file.Name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." {
		name = "evidence" + allowedEvidenceTypes[file.MIMEType]
	}
	return fmt.Sprintf("%s/%s-%d-%s", prefix, owner, at.UnixMilli(), name)
}
