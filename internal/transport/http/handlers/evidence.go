package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/rodriguesaradhan-web/kozhigo/internal/usecase"
)

const maxEvidenceUploadBytes = 5 * 1024 * 1024

// readEvidenceFile pulls the named multipart file into memory for validation.
// The size is capped before reading so an oversized upload never buffers fully.
func readEvidenceFile(form *multipart.Form, field string) (usecase.EvidenceFile, error) {
	files := form.File[field]
	if len(files) == 0 {
		return usecase.EvidenceFile{}, fmt.Errorf("%s file is required", field)
	}

	header := files[0]
	if header.Size > maxEvidenceUploadBytes {
		return usecase.EvidenceFile{}, fmt.Errorf("%s file exceeds 5MB limit", field)
	}

	file, err := header.Open()
	if err != nil {
		return usecase.EvidenceFile{}, fmt.Errorf("open %s file: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxEvidenceUploadBytes+1))
	if err != nil {
		return usecase.EvidenceFile{}, fmt.Errorf("read %s file: %w", field, err)
	}
	if int64(len(data)) > maxEvidenceUploadBytes {
		return usecase.EvidenceFile{}, fmt.Errorf("%s file exceeds 5MB limit", field)
	}

	mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	return usecase.EvidenceFile{
		Name:     header.Filename,
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

func formValue(form *multipart.Form, field string) string {
	values := form.Value[field]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
