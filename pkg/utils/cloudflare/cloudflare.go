package cloudflare

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"lightbnb_backend/pkg/config"
)

// ObjectAPI is the part of the S3 client the photo store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// NewS3Client returns an S3 client pointed at the account's R2 endpoint.
func NewS3Client(ctx context.Context, cfg config.StorageConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

// PhotoStore keeps property photos in a bucket served from a public URL.
type PhotoStore struct {
	client    ObjectAPI
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewPhotoStore(client ObjectAPI, bucket, publicURL string) *PhotoStore {
	return &PhotoStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		now:       time.Now,
	}
}

type UploadPhotoInput struct {
	OwnerID       uint
	PropertyTitle string
	Body          io.Reader
	ContentType   string
	Extension     string
}

type UploadResult struct {
	URL      string `json:"url"`
	ObjectID string `json:"object_id"`
}

// OwnerPrefix is the key prefix shared by every photo a user uploads.
func OwnerPrefix(ownerID uint) string {
	return "users/" + strconv.FormatUint(uint64(ownerID), 10) + "/"
}

// ObjectKey lays photos out as users/<owner id>/properties/<title>/photos/<id><ext>.
func ObjectKey(ownerID uint, propertyTitle, id, ext string) string {
	title := slug.Make(propertyTitle)
	if title == "" {
		title = "untitled"
	}
	return OwnerPrefix(ownerID) + path.Join("properties", title, "photos", id+ext)
}

func (s *PhotoStore) Upload(ctx context.Context, in UploadPhotoInput) (UploadResult, error) {
	id := fmt.Sprintf("%d-%s", s.now().UnixNano(), uuid.New().String())
	key := ObjectKey(in.OwnerID, in.PropertyTitle, id, in.Extension)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        in.Body,
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("could not upload file to R2: %w", err)
	}

	return UploadResult{
		URL:      s.publicURL + "/" + key,
		ObjectID: id,
	}, nil
}

func (s *PhotoStore) Delete(ctx context.Context, fullURL string) error {
	key, ok := s.KeyFromURL(fullURL)
	if !ok {
		return fmt.Errorf("url %q is not served by this store", fullURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("could not delete file from R2: %w", err)
	}

	return nil
}

// KeyFromURL returns the object key behind a public URL. It reports false
// for URLs this store does not serve.
func (s *PhotoStore) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.publicURL+"/")
	return key, ok && key != ""
}
