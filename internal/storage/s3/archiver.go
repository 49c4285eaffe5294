package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"timekeep/internal/config"
)

const (
	emptyAWSSessionToken = ""
	archivePrefix        = "exports"
	keyTimestampLayout   = "20060102T150405"

	errFailedCreateAWSSessionFmt           = "failed to create AWS session: %w"
	errFailedUploadArchiveFmt              = "failed to upload export archive: %w"
	errFailedGeneratePresignedDownloadFmt  = "failed to generate presigned download URL: %w"
)

// Archiver keeps a copy of every generated export document in S3 so payroll
// snapshots survive later edits to the underlying entries.
type Archiver struct {
	svc            *s3.S3
	bucket         string
	downloadExpiry time.Duration
}

func NewArchiver(cfg *config.ArchiveConfig, downloadExpiry time.Duration) (*Archiver, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})

	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	return &Archiver{
		svc:            s3.New(sess),
		bucket:         cfg.Bucket,
		downloadExpiry: downloadExpiry,
	}, nil
}

// Store uploads one export document and returns the object key. Keys are
// partitioned by year/month of upload time.
func (a *Archiver) Store(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := BuildObjectKey(name, time.Now().UTC())

	_, err := a.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})

	if err != nil {
		return "", fmt.Errorf(errFailedUploadArchiveFmt, err)
	}

	return key, nil
}

// DownloadURL generates a presigned GET URL for a stored archive.
func (a *Archiver) DownloadURL(ctx context.Context, key string) (string, error) {
	req, _ := a.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)

	url, err := req.Presign(a.downloadExpiry)
	if err != nil {
		return "", fmt.Errorf(errFailedGeneratePresignedDownloadFmt, err)
	}

	return url, nil
}

func BuildObjectKey(name string, at time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%s-%s",
		archivePrefix, at.Year(), at.Month(), at.Format(keyTimestampLayout), name)
}
