// Package storage uploads images to the backend's object storage through its
// S3-compatible endpoint and resolves their public URLs. Buckets, access
// policies, and serving are owned by the backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/supanews/supanews/internal/client/config"
	"github.com/supanews/supanews/internal/client/session"
	"github.com/supanews/supanews/internal/common"
	"github.com/supanews/supanews/internal/logging"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	timeNow = time.Now
)

// File is one upload: the original filename, the declared content type, and
// the content itself.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Uploader stores image files under a per-user path and returns their
// public URLs.
type Uploader struct {
	cfg      *config.Config
	sessions *session.Store
	log      logging.Logger
}

// NewUploader builds an Uploader bound to the configured bucket and the
// session store (uploads require an authenticated user).
func NewUploader(cfg *config.Config, sessions *session.Store, log logging.Logger) *Uploader {
	return &Uploader{cfg: cfg, sessions: sessions, log: log}
}

// Upload stores the file with overwrite-allowed semantics and returns the
// uploaded object's public URL.
func (u *Uploader) Upload(ctx context.Context, f File) (string, error) {
	uid := u.sessions.UserID()
	if uid == "" {
		return "", common.ErrNotAuthenticated
	}

	key := u.objectKey(uid, f.Name)
	bucket := u.cfg.StorageBucket
	u.log.Debug(ctx, "uploading image", "bucket", bucket, "key", key)

	client, err := u.s3Client(ctx)
	if err != nil {
		return "", &common.StorageError{Message: "storage client: " + err.Error(), Err: err}
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         f.Body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
	})
	if err != nil {
		if isBucketMissing(err) {
			return "", &common.StorageError{
				BucketMissing: true,
				Message: fmt.Sprintf("storage bucket %q not found. Create it in the backend's storage or set STORAGE_BUCKET to the correct name", bucket),
				Err:     err,
			}
		}
		return "", &common.StorageError{Message: "image upload failed: " + err.Error(), Err: err}
	}

	publicURL, err := u.PublicURL(key)
	if err != nil {
		return "", err
	}
	return publicURL, nil
}

// PublicURL resolves the public URL of an uploaded object. The bucket is
// expected to be public; serving is the backend's concern.
func (u *Uploader) PublicURL(key string) (string, error) {
	base := strings.TrimRight(u.cfg.BackendURL, "/")
	joined, err := url.JoinPath(base, "storage/v1/object/public", u.cfg.StorageBucket, key)
	if err != nil || base == "" {
		return "", &common.StorageError{Message: "failed to get public URL for image", Err: err}
	}
	return joined, nil
}

func (u *Uploader) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(u.cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.StorageAccessKey,
			u.cfg.StorageSecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(u.cfg.BackendURL, "/") + "/storage/v1/s3"
	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
var dashRuns = regexp.MustCompile(`-+`)

// sanitizeFileName restricts a filename to letters, digits, '.', '_' and '-',
// collapsing every run of removed characters (and of dashes) to a single '-'.
func sanitizeFileName(name string) string {
	s := unsafeChars.ReplaceAllString(name, "-")
	return dashRuns.ReplaceAllString(s, "-")
}

// objectKey namespaces the object by user id and timestamp so concurrent
// uploads of the same filename cannot collide. The simple-path scheme keeps
// keys flat for test buckets.
func (u *Uploader) objectKey(uid, name string) string {
	millis := timeNow().UnixMilli()

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		ext = "bin"
	}

	if u.cfg.SimpleStoragePath {
		return fmt.Sprintf("test-%d.%s", millis, ext)
	}

	base := sanitizeFileName(strings.TrimSuffix(name, path.Ext(name)))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s/%d-%s.%s", uid, millis, base, ext)
}

// isBucketMissing matches the storage service's "no such bucket" condition
// in either its typed or textual form.
func isBucketMissing(err error) bool {
	var nb *types.NoSuchBucket
	if errors.As(err, &nb) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "bucket not found")
}
