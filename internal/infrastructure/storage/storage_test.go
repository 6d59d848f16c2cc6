package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafecritique/review-api/internal/core/ports"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), &ports.ImageUpload{Filename: "Cover.PNG", Data: []byte("png-bytes")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "myImage-"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), ref))
	require.NoError(t, store.Delete(context.Background(), ref), "deleting twice is a no-op")
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalStore_DeleteRejectsPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Delete(context.Background(), "../etc/passwd"))
	assert.Error(t, store.Delete(context.Background(), ""))
}

type fakeObjectAPI struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted *s3.DeleteObjectInput
	err     error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = in
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_SaveUsesPrefixAndContentType(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newS3Store(api, S3Config{Bucket: "covers", Prefix: "uploads/"})

	key, err := store.Save(context.Background(), &ports.ImageUpload{Filename: "dish.jpg", ContentType: "image/jpeg", Data: []byte("jpg")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "uploads/myImage-"))
	assert.Equal(t, "covers", aws.ToString(api.put.Bucket))
	assert.Equal(t, key, aws.ToString(api.put.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(api.put.ContentType))
	assert.Equal(t, "jpg", string(api.body))

	require.NoError(t, store.Delete(context.Background(), key))
	assert.Equal(t, key, aws.ToString(api.deleted.Key))
}

func TestS3Store_PropagatesErrors(t *testing.T) {
	store := newS3Store(&fakeObjectAPI{err: errors.New("access denied")}, S3Config{Bucket: "covers"})

	_, err := store.Save(context.Background(), &ports.ImageUpload{Filename: "a.gif"})
	assert.ErrorContains(t, err, "access denied")
	assert.ErrorContains(t, store.Delete(context.Background(), "a.gif"), "access denied")
}
