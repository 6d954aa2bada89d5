package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/logger"
)

// PhotoStore keeps uploaded food photos and returns their public URL.
type PhotoStore interface {
	SavePhoto(ctx context.Context, userID uuid.UUID, fileName, contentType string, data []byte) (string, error)
}

// S3PhotoStore stores food photos in an S3 bucket.
type S3PhotoStore struct {
	s3Config *config.S3Config
}

func NewS3PhotoStore(s3Config *config.S3Config) *S3PhotoStore {
	return &S3PhotoStore{s3Config: s3Config}
}

func (s *S3PhotoStore) SavePhoto(ctx context.Context, userID uuid.UUID, fileName, contentType string, data []byte) (string, error) {
	key := config.PhotoKey(userID.String(), path.Base(fileName), time.Now())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.s3Config.ObjectURL(key)
	logger.Debug("photo uploaded", zap.String("url", url))
	return url, nil
}
