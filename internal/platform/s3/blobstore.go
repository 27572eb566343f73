// Package s3 implements the profile-image blob store on AWS S3 (or any
// S3-compatible endpoint such as MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	apperrors "github.com/Krishna1199000/propalai-backend/internal/pkg/errors"
	"github.com/Krishna1199000/propalai-backend/internal/pkg/logger"
)

// MaxUploadBytes is the image size ceiling, enforced before any network
// call is made.
const MaxUploadBytes = 5 << 20

const (
	uploadTimeout  = 30 * time.Second
	deleteTimeout  = 10 * time.Second
	presignExpires = 15 * time.Minute
)

// BlobStore is the object-storage collaborator for profile images.
type BlobStore interface {
	// Upload validates and stores data, returning the object key and its
	// public URL.
	Upload(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (key string, url string, err error)
	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// PresignPut returns a short-lived signed URL a client can PUT the
	// object bytes to directly.
	PresignPut(ctx context.Context, key string, contentType string) (string, error)
	// PublicURL resolves an object key to its public address.
	PublicURL(key string) string
}

type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// BaseEndpoint overrides the AWS endpoint for S3-compatible stores.
	BaseEndpoint string
}

type blobStore struct {
	log     *logger.Logger
	client  *s3.Client
	presign *s3.PresignClient
	cfg     Config
}

func NewBlobStore(log *logger.Logger, cfg Config) (BlobStore, error) {
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("blob store: region is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("blob store: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("blob store: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &blobStore{
		log:     log.With("service", "BlobStore"),
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
	}, nil
}

// ValidateUpload runs the pre-network checks shared by Upload and the
// presigned path: image content type and the 5 MiB ceiling.
func ValidateUpload(size int, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: file must be an image", apperrors.ErrInvalidArgument)
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("%w: file size must be less than 5MB", apperrors.ErrInvalidArgument)
	}
	return nil
}

func (bs *blobStore) Upload(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (string, string, error) {
	if err := ValidateUpload(len(data), contentType); err != nil {
		return "", "", err
	}

	key := ObjectKey(ownerID, contentType)

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	if _, err := bs.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bs.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", "", fmt.Errorf("%w: put object: %v", apperrors.ErrUpstream, err)
	}

	return key, bs.PublicURL(key), nil
}

func (bs *blobStore) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if _, err := bs.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bs.cfg.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		return fmt.Errorf("%w: delete object: %v", apperrors.ErrUpstream, err)
	}
	return nil
}

func (bs *blobStore) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	req, err := bs.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bs.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpires))
	if err != nil {
		return "", fmt.Errorf("%w: presign put: %v", apperrors.ErrUpstream, err)
	}
	return req.URL, nil
}

func (bs *blobStore) PublicURL(key string) string {
	if bs.cfg.BaseEndpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(bs.cfg.BaseEndpoint, "/"), bs.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bs.cfg.Bucket, bs.cfg.Region, key)
}

// OwnerPrefix is the key prefix under which all of one user's profile
// images live; confirm-style flows use it to check key ownership.
func OwnerPrefix(ownerID uuid.UUID) string {
	return fmt.Sprintf("profile-images/%s/", ownerID)
}

// ObjectKey returns a fresh storage key for a profile image owned by
// ownerID.
func ObjectKey(ownerID uuid.UUID, contentType string) string {
	ext := extensionFor(contentType)
	return fmt.Sprintf("%s%d%s", OwnerPrefix(ownerID), time.Now().UnixMilli(), ext)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
