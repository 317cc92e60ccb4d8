package media

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/anjiri1684/tutor_cards/apperrors"
)

// PublicPrefix is the route the upload directory is served under.
const PublicPrefix = "/uploads"

// LocalUploader writes files below Dir and returns paths relative to the
// serving origin.
type LocalUploader struct {
	Dir string
}

func NewLocalUploader(dir string) *LocalUploader {
	return &LocalUploader{Dir: dir}
}

func (u *LocalUploader) Upload(_ context.Context, kind Kind, filename string, r io.Reader) (string, error) {
	ext, err := CheckFile(filename, 0)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(u.Dir, kind.folder())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.NewUploadError(errors.Wrap(err, "create upload dir"))
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", apperrors.NewUploadError(errors.Wrap(err, "create file"))
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dst)
		return "", apperrors.NewUploadError(errors.Wrap(err, "write file"))
	}
	return path.Join(PublicPrefix, kind.folder(), name), nil
}
