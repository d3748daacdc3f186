package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore stores images in Cloudinary. The uploader accepts either
// raw bytes or a remote URL as the source.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, contentType, folder string) (*UploadResult, error) {
	return s.upload(ctx, r, folder)
}

func (s *CloudinaryStore) UploadFromURL(ctx context.Context, sourceURL, folder string) (*UploadResult, error) {
	return s.upload(ctx, sourceURL, folder)
}

func (s *CloudinaryStore) upload(ctx context.Context, source interface{}, folder string) (*UploadResult, error) {
	res, err := s.cld.Upload.Upload(ctx, source, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.SecureURL == "" {
		return nil, fmt.Errorf("cloudinary upload: empty secure url (%s)", res.Error.Message)
	}
	return &UploadResult{URL: res.SecureURL, PublicID: res.PublicID}, nil
}
