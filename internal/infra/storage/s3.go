package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

// Uploader grava um objeto público e devolve a URL dele.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type S3Uploader struct {
	bucket    string
	publicURL string
	client    *s3.Client
}

// NewS3Uploader monta o cliente com credenciais estáticas. Com S3_ENDPOINT
// definido (MinIO, R2) usa path-style.
func NewS3Uploader(cfg *config.Config) *S3Uploader {
	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Uploader{
		bucket:    cfg.S3Bucket,
		publicURL: PublicBase(cfg),
		client:    s3.New(opts),
	}
}

func (u *S3Uploader) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return u.publicURL + "/" + key, nil
}

// PublicBase é a URL base dos objetos, sem barra final.
func PublicBase(cfg *config.Config) string {
	switch {
	case cfg.S3PublicURL != "":
		return strings.TrimRight(cfg.S3PublicURL, "/")
	case cfg.S3Endpoint != "":
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
}

// ObjectKey gera uma chave única dentro de folder, ex. "logo/<uuid>.webp".
func ObjectKey(folder, ext string) string {
	return fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), strings.TrimPrefix(ext, "."))
}
