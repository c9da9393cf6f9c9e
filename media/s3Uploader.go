// Package media uploads user images to S3.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gosimple/slug"
)

// ObjectUploader is the subset of the S3 upload manager the uploader uses.
type ObjectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3Uploader struct {
	uploader      ObjectUploader
	bucket        string
	publicBaseURL string
}

// NewS3Uploader builds an uploader from the default AWS credential chain.
func NewS3Uploader(ctx context.Context, bucket, publicBaseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return NewS3UploaderWith(manager.NewUploader(client), bucket, publicBaseURL), nil
}

func NewS3UploaderWith(u ObjectUploader, bucket, publicBaseURL string) *S3Uploader {
	return &S3Uploader{uploader: u, bucket: bucket, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// AvatarKey names the object for a user's avatar, e.g.
// "avatars/u1-my-photo.png".
func AvatarKey(userID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if name == "" {
		name = "avatar"
	}
	return fmt.Sprintf("avatars/%s-%s%s", slug.Make(userID), name, ext)
}

func (s *S3Uploader) UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (string, error) {
	key := AvatarKey(userID, filename)
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return result.Location, nil
}
