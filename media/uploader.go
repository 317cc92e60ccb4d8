// Package media stores uploaded images and hands back the reference that
// cards and profiles keep.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/anjiri1684/tutor_cards/apperrors"
)

type Kind string

const (
	ProfilePhoto Kind = "profile-photo"
	CardPhoto    Kind = "card-photo"
)

const MaxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// Uploader stores r and returns its reference: a relative /uploads path for
// local storage or an absolute URL for hosted storage.
type Uploader interface {
	Upload(ctx context.Context, kind Kind, filename string, r io.Reader) (string, error)
}

// folder is the sub directory a kind is stored under, e.g. "profile-photos".
func (k Kind) folder() string {
	return string(k) + "s"
}

// FormField is the multipart field an upload of this kind is sent in:
// "profilePhoto" or "cardPhoto".
func (k Kind) FormField() string {
	switch k {
	case ProfilePhoto:
		return "profilePhoto"
	case CardPhoto:
		return "cardPhoto"
	}
	return string(k)
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case ProfilePhoto, CardPhoto:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown upload kind %q", s)
}

// CheckFile rejects names with a non-image extension and files above
// MaxUploadSize. It returns the lower-cased extension.
func CheckFile(filename string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", apperrors.NewRejectedUpload("only jpg/jpeg/png/webp/gif allowed")
	}
	if size > MaxUploadSize {
		return "", apperrors.NewRejectedUpload("file too large (max 5MB)")
	}
	return ext, nil
}
