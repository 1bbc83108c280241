// Package storage archives scanned receipt images to S3-compatible
// object storage. Archival is optional; the scan pipeline works without
// it.
package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ReceiptArchiver uploads receipt images to S3-compatible storage.
type ReceiptArchiver struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
}

// Config holds configuration for the receipt image archive.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
}

// NewReceiptArchiver creates an archiver backed by an S3-compatible
// endpoint.
func NewReceiptArchiver(config *Config) (*ReceiptArchiver, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:           aws.String(config.Region),
		Endpoint:         aws.String(config.Endpoint + "/storage/v1/s3"),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(false),
	}))

	return &ReceiptArchiver{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		endpoint: config.Endpoint,
	}, nil
}

// ArchiveImage uploads a scanned receipt image and returns its public
// URL.
func (a *ReceiptArchiver) ArchiveImage(imageData []byte, filename string) (string, error) {
	_, err := a.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(filename),
		Body:          bytes.NewReader(imageData),
		ContentType:   aws.String("image/jpeg"),
		ContentLength: aws.Int64(int64(len(imageData))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	// URL format: {endpoint}/storage/v1/object/public/{bucket}/{filename}
	baseURL := strings.Replace(a.endpoint, "/storage/v1/s3", "", 1)
	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", baseURL, a.bucket, filename)

	return publicURL, nil
}
