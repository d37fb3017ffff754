package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/SenszZ00/cybersafelara1-sub000/internal"
)

// MaxAttachmentSize is the hard cap on a single report attachment.
const MaxAttachmentSize = 10 << 20 // 10 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Object is one attachment upload: a byte stream plus the metadata needed
// to store and later serve it.
type Object struct {
	Reader      io.Reader
	Name        string
	Size        int64
	ContentType string
}

// BlobStore is the external file-blob collaborator. Put returns a
// retrievable object path; PresignedGetURL converts a stored path back into
// a temporary download link.
type BlobStore interface {
	Put(ctx context.Context, obj Object) (string, error)
	PresignedGetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, path string) error
}

// ValidateAttachment enforces the upload constraints before anything touches
// the blob store: allowed extensions and the size cap.
func ValidateAttachment(filename string, size int64) *apperrors.AppError {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return apperrors.NewValidationFieldError(
			"attachment",
			fmt.Sprintf("file type %q is not allowed (jpg, jpeg, png, pdf, doc, docx)", ext),
			apperrors.ErrCodeInvalidAttachment,
		)
	}
	if size > MaxAttachmentSize {
		return apperrors.NewValidationFieldError(
			"attachment",
			"file must not exceed 10 MiB",
			apperrors.ErrCodeAttachmentTooLarge,
		)
	}
	return nil
}
