package service

import (
	"account-service/config"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3 struct {
	mock.Mock
	uploaded []byte
}

func (m *MockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if params.Body != nil {
		m.uploaded, _ = io.ReadAll(params.Body)
	}
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.PutObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.DeleteObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMediaService_Upload(t *testing.T) {
	client := new(MockS3)
	service := newMediaService(client, "media-bucket", "https://cdn.example.com/")
	path := writeTempFile(t, "avatar.PNG", "png-bytes")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "media-bucket" &&
			strings.HasPrefix(aws.ToString(in.Key), "media/") &&
			strings.HasSuffix(aws.ToString(in.Key), ".png") &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil)

	url, err := service.Upload(context.Background(), path)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/media/"), url)
	assert.Equal(t, "png-bytes", string(client.uploaded))
	assert.NoFileExists(t, path)
	client.AssertExpectations(t)
}

func TestMediaService_Upload_FailureRemovesFile(t *testing.T) {
	client := new(MockS3)
	service := newMediaService(client, "media-bucket", "https://cdn.example.com")
	path := writeTempFile(t, "cover.jpg", "jpg-bytes")

	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	url, err := service.Upload(context.Background(), path)

	assert.Error(t, err)
	assert.Empty(t, url)
	assert.NoFileExists(t, path)
}

func TestMediaService_Upload_EmptyPath(t *testing.T) {
	client := new(MockS3)
	service := newMediaService(client, "media-bucket", "https://cdn.example.com")

	url, err := service.Upload(context.Background(), "")

	assert.NoError(t, err)
	assert.Empty(t, url)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestMediaService_Upload_MissingFile(t *testing.T) {
	service := newMediaService(new(MockS3), "media-bucket", "https://cdn.example.com")

	url, err := service.Upload(context.Background(), filepath.Join(t.TempDir(), "gone.png"))

	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestMediaService_Delete(t *testing.T) {
	client := new(MockS3)
	service := newMediaService(client, "media-bucket", "https://cdn.example.com")

	client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "media/abc.png"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	require.NoError(t, service.Delete(context.Background(), "https://cdn.example.com/media/abc.png"))
	require.NoError(t, service.Delete(context.Background(), "https://elsewhere.example.com/media/abc.png"))
	require.NoError(t, service.Delete(context.Background(), ""))

	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com",
		publicBaseURL(&config.S3Config{Bucket: "b", PublicURL: "https://cdn.example.com"}))
	assert.Equal(t, "http://localhost:9000/b",
		publicBaseURL(&config.S3Config{Bucket: "b", Endpoint: "http://localhost:9000/"}))
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com",
		publicBaseURL(&config.S3Config{Bucket: "b", Region: "eu-west-1"}))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", getContentType("a.JPEG"))
	assert.Equal(t, "image/webp", getContentType("a.webp"))
	assert.Equal(t, "application/octet-stream", getContentType("a"))
}

type MockBucketAPI struct {
	mock.Mock
}

func (m *MockBucketAPI) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Bucket))
	if out, ok := args.Get(0).(*s3.HeadBucketOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBucketAPI) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Bucket))
	if out, ok := args.Get(0).(*s3.CreateBucketOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestEnsureMediaBucket(t *testing.T) {
	missing := &types.NotFound{}

	tests := []struct {
		name        string
		setupMocks  func(m *MockBucketAPI)
		expectedErr string
	}{
		{
			name: "bucket exists",
			setupMocks: func(m *MockBucketAPI) {
				m.On("HeadBucket", mock.Anything, "avatars").Return(&s3.HeadBucketOutput{}, nil)
			},
		},
		{
			name: "bucket created",
			setupMocks: func(m *MockBucketAPI) {
				m.On("HeadBucket", mock.Anything, "avatars").Return(nil, missing)
				m.On("CreateBucket", mock.Anything, "avatars").Return(&s3.CreateBucketOutput{}, nil)
			},
		},
		{
			name: "created concurrently",
			setupMocks: func(m *MockBucketAPI) {
				m.On("HeadBucket", mock.Anything, "avatars").Return(nil, missing)
				m.On("CreateBucket", mock.Anything, "avatars").Return(nil, &types.BucketAlreadyOwnedByYou{})
			},
		},
		{
			name: "create fails",
			setupMocks: func(m *MockBucketAPI) {
				m.On("HeadBucket", mock.Anything, "avatars").Return(nil, missing)
				m.On("CreateBucket", mock.Anything, "avatars").Return(nil, errors.New("access denied"))
			},
			expectedErr: `бакет медиа "avatars" недоступен: access denied`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockBucketAPI)
			tt.setupMocks(client)

			err := ensureMediaBucket(context.Background(), client, "avatars")

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			client.AssertExpectations(t)
		})
	}
}
