package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	getErr  error
	delErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = b
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(b)))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.delErr != nil {
		return nil, f.delErr
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func withFakeS3(t *testing.T, fake *fakeS3) *s3.Options {
	t.Helper()

	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew
	})

	opts := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		for _, fn := range optFns {
			fn(opts)
		}
		return fake
	}
	return opts
}

func TestNewS3Store_Endpoint(t *testing.T) {
	opts := withFakeS3(t, newFakeS3())

	_, err := NewS3Store(context.Background(), S3Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://minio:9000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_NoEndpoint(t *testing.T) {
	opts := withFakeS3(t, newFakeS3())

	_, err := NewS3Store(context.Background(), S3Config{Bucket: "b", Region: "eu-west-1"})
	require.NoError(t, err)
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestNewS3Store_ConfigError(t *testing.T) {
	withFakeS3(t, newFakeS3())
	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}

	_, err := NewS3Store(context.Background(), S3Config{})
	assert.ErrorContains(t, err, "no region")
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	withFakeS3(t, fake)
	ctx := context.Background()

	s, err := NewS3Store(ctx, S3Config{Bucket: "uploads"})
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "3/a.pdf", strings.NewReader("pdf"), 3, "application/pdf"))
	assert.Equal(t, "application/pdf", fake.types["uploads/3/a.pdf"])

	rc, err := s.Get(ctx, "3/a.pdf")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "pdf", string(b))

	require.NoError(t, s.Delete(ctx, "3/a.pdf"))
	_, err = s.Get(ctx, "3/a.pdf")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestS3Store_Errors(t *testing.T) {
	fake := newFakeS3()
	withFakeS3(t, fake)
	ctx := context.Background()
	s, err := NewS3Store(ctx, S3Config{Bucket: "uploads"})
	require.NoError(t, err)

	fake.putErr = errors.New("put failed")
	fake.getErr = errors.New("get failed")
	fake.delErr = errors.New("delete failed")

	assert.ErrorContains(t, s.Put(ctx, "k", strings.NewReader(""), 0, ""), "put failed")
	_, err = s.Get(ctx, "k")
	assert.ErrorContains(t, err, "get failed")
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorContains(t, s.Delete(ctx, "k"), "delete failed")
}
