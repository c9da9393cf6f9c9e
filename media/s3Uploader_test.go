package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUploader struct {
	input *s3.PutObjectInput
	body  string
}

func (r *recordingUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	r.input = input
	b, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	r.body = string(b)
	return &manager.UploadOutput{Location: "https://bucket.s3.amazonaws.com/" + aws.ToString(input.Key)}, nil
}

func TestAvatarKey(t *testing.T) {
	assert.Equal(t, "avatars/u1-my-holiday-photo.jpg", AvatarKey("u1", "My Holiday Photo.JPG"))
	assert.Equal(t, "avatars/u1-avatar.png", AvatarKey("u1", ".png"))
}

func TestUploadAvatar(t *testing.T) {
	rec := &recordingUploader{}
	up := NewS3UploaderWith(rec, "amexan-media", "")

	url, err := up.UploadAvatar(context.Background(), "u1", "me.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/avatars/u1-me.png", url)
	assert.Equal(t, "amexan-media", aws.ToString(rec.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(rec.input.ContentType))
	assert.Equal(t, "img", rec.body)

	cdn := NewS3UploaderWith(rec, "amexan-media", "https://cdn.amexan.store/")
	url, err = cdn.UploadAvatar(context.Background(), "u1", "me.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.amexan.store/avatars/u1-me.png", url)
}
