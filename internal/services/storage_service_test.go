package services

import (
	"context"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPresigner struct {
	lastInput *s3.PutObjectInput
}

func (p *stubPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	p.lastInput = params
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3.amazonaws.com/" + *params.Key}, nil
}

func newTestStorage() (*StorageService, *stubPresigner) {
	presigner := &stubPresigner{}
	service := NewStorageService(presigner, "test-bucket")
	service.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return service, presigner
}

func TestPresignPostUpload(t *testing.T) {
	service, presigner := newTestStorage()

	url, err := service.PresignPostUpload(context.Background(), "user-1", "image/png", "photo.png")
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	require.NotNil(t, presigner.lastInput)
	assert.Equal(t, "test-bucket", *presigner.lastInput.Bucket)
	assert.Equal(t, "image/png", *presigner.lastInput.ContentType)

	wantKey := "uploads/posts/user-1/1772366400000-photo.png"
	assert.Equal(t, wantKey, *presigner.lastInput.Key)
}

func TestPresignSignUpUpload(t *testing.T) {
	service, presigner := newTestStorage()

	_, err := service.PresignSignUpUpload(context.Background(), "ada@example.com", "image/webp", "avatar.webp")
	require.NoError(t, err)

	wantKey := "uploads/users/email/ada@example.com/1772366400000-avatar.webp"
	assert.Equal(t, wantKey, *presigner.lastInput.Key)
}

func TestPresign_RejectsUnsupportedImageType(t *testing.T) {
	service, presigner := newTestStorage()

	for _, imageType := range []string{"image/gif", "application/pdf", "text/html", ""} {
		_, err := service.PresignPostUpload(context.Background(), "user-1", imageType, "file")
		assert.ErrorIs(t, err, ErrUnsupportedImage)

		_, err = service.PresignSignUpUpload(context.Background(), "ada@example.com", imageType, "file")
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	}
	assert.Nil(t, presigner.lastInput)
}
