package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/questclash/backend/config"
)

type s3Storage struct {
	uploader *s3manager.Uploader
	cfg      config.S3Configs
}

// NewS3Storage connects to any S3-compatible object store. The service
// only writes objects, downloads go straight to the public endpoint.
func NewS3Storage(cfg config.S3Configs) Storage {
	sess, _ := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})

	return &s3Storage{uploader: s3manager.NewUploader(sess), cfg: cfg}
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	bucket := object.Bucket
	if bucket == "" {
		bucket = s.cfg.Bucket
	}

	// A random part in the key keeps repeated uploads of the same file
	// name apart.
	key := fmt.Sprintf("%s/%s-%s", object.Prefix, uuid.NewString(), object.FileName)
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(object.Data),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(object.Mime),
	})
	if err != nil {
		return nil, fmt.Errorf("cannot upload %s to bucket %s: %w", key, bucket, err)
	}

	return &UploadResponse{
		Url:      fmt.Sprintf("%s/%s/%s", s.cfg.PublicEndpoint, bucket, key),
		FileName: key,
	}, nil
}

// BulkUpload stores the size variants of an image. Variants go up one by
// one, the first failure aborts the remainder.
func (s *s3Storage) BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error) {
	resps := make([]*UploadResponse, 0, len(objects))
	for _, object := range objects {
		resp, err := s.Upload(ctx, object)
		if err != nil {
			return nil, err
		}

		resps = append(resps, resp)
	}

	return resps, nil
}
