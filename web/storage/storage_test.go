package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "camiseta.png", strings.NewReader("first"), "image/png"))
	require.NoError(t, store.Save(ctx, "camiseta.png", strings.NewReader("second"), "image/png"))

	rc, err := store.Open(ctx, "camiseta.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, store.Remove(ctx, "camiseta.png"))
	assert.ErrorIs(t, store.Remove(ctx, "camiseta.png"), ErrNotExist)
	_, err = store.Open(ctx, "camiseta.png")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStoreStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir+"/passwd", store.path("../../etc/passwd"))
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreUsesPrefixedKeys(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string][]byte{}}
	store := NewS3StoreWithClient(fake, "tienda")

	require.NoError(t, store.Save(ctx, "taza.jpg", strings.NewReader("jpeg"), "image/jpeg"))
	assert.Contains(t, fake.objects, "img/taza.jpg")

	rc, err := store.Open(ctx, "taza.jpg")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, store.Remove(ctx, "taza.jpg"))
	_, err = store.Open(ctx, "taza.jpg")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{Region: "eu-west-1"})
	assert.Error(t, err)
}
