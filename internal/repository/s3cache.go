// Package repository wraps the S3 bucket that caches synthesized recordings.
// Artifacts are content-addressed: the object key is derived from the phrase
// and target language, so a repeated request reuses the earlier recording.
package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignTTL bounds how long a playback URL stays fetchable. The platform
// plays the audio immediately, so five minutes is plenty.
const presignTTL = 300 * time.Second

const audioContentType = "audio/mpeg"

// s3API is the minimal S3 interface required by AudioCache.
// *s3.Client from aws-sdk-go-v2 satisfies this interface.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// presignAPI is the minimal presigner interface required by AudioCache.
// *s3.PresignClient satisfies this interface.
type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AudioCache stores and retrieves cached recordings in a single bucket.
type AudioCache struct {
	api       s3API
	presigner presignAPI
	bucket    string
}

// New creates an AudioCache over the given bucket.
func New(api s3API, presigner presignAPI, bucket string) (*AudioCache, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if presigner == nil {
		return nil, errors.New("repository: presigner must not be nil")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("repository: bucket must not be empty")
	}
	return &AudioCache{api: api, presigner: presigner, bucket: bucket}, nil
}

// Exists reports whether a recording is already stored under key. Lookup
// failures count as a miss: the worst case is one redundant synthesis, which
// is cheaper than distinguishing unreachable storage from a missing object.
func (c *AudioCache) Exists(ctx context.Context, key string) bool {
	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		slog.DebugContext(ctx, "cache lookup treated as miss", "key", key, "err", err)
		return false
	}
	return true
}

// Store writes a recording under key, overwriting any previous object.
func (c *AudioCache) Store(ctx context.Context, key string, audio []byte) error {
	if key == "" {
		return errors.New("repository: key is required")
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(audio),
		ContentType: aws.String(audioContentType),
	})
	if err != nil {
		return fmt.Errorf("repository: store %q: %w", key, err)
	}
	return nil
}

// PresignedURL returns a time-limited fetch URL for the recording under key,
// escaped for direct embedding in SSML markup.
func (c *AudioCache) PresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("repository: key is required")
	}

	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("repository: presign %q: %w", key, err)
	}
	return escapeForMarkup(req.URL), nil
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// escapeForMarkup escapes the characters that would break an SSML audio
// element; presigned URLs always carry & in their query string.
func escapeForMarkup(url string) string {
	return markupEscaper.Replace(url)
}
