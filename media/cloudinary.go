package media

import (
	"context"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/anjiri1684/tutor_cards/apperrors"
)

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Cloudinary")
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func (u *CloudinaryUploader) Upload(ctx context.Context, kind Kind, filename string, r io.Reader) (string, error) {
	if _, err := CheckFile(filename, 0); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       u.folder + "/" + kind.folder(),
		PublicID:     uuid.NewString(),
		ResourceType: "image",
		Overwrite:    boolPtr(false),
	})
	if err != nil {
		return "", apperrors.NewUploadError(errors.Wrap(err, "cloudinary upload failed"))
	}
	if res.Error.Message != "" {
		return "", apperrors.NewUploadError(errors.New(res.Error.Message))
	}
	return res.SecureURL, nil
}
