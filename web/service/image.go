package service

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/util/filename"
	"github.com/tiendaweb/tienda/web/storage"
)

type ImageService struct {
	store storage.ImageStore
}

func NewImageService(store storage.ImageStore) *ImageService {
	return &ImageService{store: store}
}

func (s *ImageService) Store() storage.ImageStore {
	return s.store
}

// Save stores an uploaded image under its sanitized name and returns that name.
// A file with the same name is overwritten.
func (s *ImageService) Save(ctx context.Context, header *multipart.FileHeader) (string, error) {
	name := filename.Secure(header.Filename)
	if name == "" {
		return "", ErrInvalidFilename
	}
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return name, s.save(ctx, name, file)
}

func (s *ImageService) save(ctx context.Context, name string, file io.ReadSeeker) error {
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return ErrNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := s.store.Save(ctx, name, file, mtype.String()); err != nil {
		return err
	}
	logger.Debugf("image %s stored (%s)", name, mtype.String())
	return nil
}

func (s *ImageService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || filename.Secure(name) != name {
		return nil, storage.ErrNotExist
	}
	return s.store.Open(ctx, name)
}

func (s *ImageService) Remove(ctx context.Context, name string) error {
	return s.store.Remove(ctx, name)
}
