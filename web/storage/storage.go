// Package storage keeps uploaded article images, on the local disk or in an S3 bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tiendaweb/tienda/config"
)

// ErrNotExist is returned when the named image is not in the store.
var ErrNotExist = errors.New("image does not exist")

// ImageStore stores image files by their sanitized name. Saving an existing name overwrites it.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

// New returns the store selected by TIENDA_IMAGE_STORE.
func New(ctx context.Context) (ImageStore, error) {
	switch config.GetImageStore() {
	case config.ImageStoreLocal:
		return NewLocalStore(config.GetUploadFolder())
	case config.ImageStoreS3:
		accessKey, secretKey := config.GetS3Credentials()
		return NewS3Store(ctx, S3Options{
			Bucket:    config.GetS3Bucket(),
			Region:    config.GetS3Region(),
			Endpoint:  config.GetS3Endpoint(),
			AccessKey: accessKey,
			SecretKey: secretKey,
		})
	}
	return nil, fmt.Errorf("unsupported image store: %s", config.GetImageStore())
}
