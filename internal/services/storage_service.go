package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var supportedImageTypes = []string{
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/webp",
}

// ObjectPresigner issues presigned PUT URLs. Satisfied by the S3
// presign client.
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// StorageService issues presigned upload URLs for post images and
// pre-signup profile images
type StorageService struct {
	presigner ObjectPresigner
	bucket    string
	now       func() time.Time
}

// NewStorageService creates a new StorageService
func NewStorageService(presigner ObjectPresigner, bucket string) *StorageService {
	return &StorageService{
		presigner: presigner,
		bucket:    bucket,
		now:       time.Now,
	}
}

func imageTypeSupported(imageType string) bool {
	for _, t := range supportedImageTypes {
		if t == imageType {
			return true
		}
	}
	return false
}

func (s *StorageService) presign(ctx context.Context, key, imageType string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(imageType),
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignPostUpload issues an upload URL for an authenticated user's post
// image
func (s *StorageService) PresignPostUpload(ctx context.Context, userID, imageType, imageName string) (string, error) {
	if !imageTypeSupported(imageType) {
		return "", ErrUnsupportedImage
	}
	key := fmt.Sprintf("uploads/posts/%s/%d-%s", userID, s.now().UnixMilli(), imageName)
	return s.presign(ctx, key, imageType)
}

// PresignSignUpUpload issues an upload URL for a pre-signup profile image,
// identified by the email the account will be created with
func (s *StorageService) PresignSignUpUpload(ctx context.Context, email, imageType, imageName string) (string, error) {
	if !imageTypeSupported(imageType) {
		return "", ErrUnsupportedImage
	}
	key := fmt.Sprintf("uploads/users/email/%s/%d-%s", email, s.now().UnixMilli(), imageName)
	return s.presign(ctx, key, imageType)
}
