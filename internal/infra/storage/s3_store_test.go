package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Bucket+"/"+*in.Key] = data
	f.types[*in.Bucket+"/"+*in.Key] = *in.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[*in.Bucket+"/"+*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := newS3StoreWithClient(fake, "bucket", "photos/")
	ctx := context.Background()

	name, err := s.Store(ctx, []byte("png-bytes"), "me.png")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"))
	require.Contains(t, fake.objects, "bucket/photos/"+name)
	require.Equal(t, "image/png", fake.types["bucket/photos/"+name])

	got, err := s.Retrieve(ctx, name)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), got)

	removed, err := s.Remove(ctx, name)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = s.Remove(ctx, name)
	require.NoError(t, err)
	require.False(t, removed)

	_, err = s.Retrieve(ctx, name)
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestS3StoreValidation(t *testing.T) {
	fake := newFakeS3()
	s := newS3StoreWithClient(fake, "bucket", "")
	ctx := context.Background()

	_, err := s.Store(ctx, []byte("x"), "a.exe")
	require.ErrorIs(t, err, ErrExtensionNotAllowed)
	require.Empty(t, fake.objects)

	_, err = s.Retrieve(ctx, "../a.png")
	require.ErrorIs(t, err, ErrInvalidFileName)

	fake.putErr = errors.New("network down")
	_, err = s.Store(ctx, []byte("x"), "a.png")
	require.Error(t, err)
}
