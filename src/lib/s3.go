package lib

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"mrs/src/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func GetS3Client() *s3.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

// S3UploadDocument stores a body document under key in the documents
// bucket.
func S3UploadDocument(ctx context.Context, key string, contentType string, body []byte) error {
	client := GetS3Client()
	if client == nil {
		return errors.New("s3 client unavailable")
	}
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(config.S3_DOCS_BUCKET),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("Failed to upload document [%s]: %s\n", key, err.Error())
		return err
	}
	return nil
}

// S3DownloadDocument fetches a stored document. A missing key is reported
// as (nil, nil) so the caller can answer 404 without string matching.
func S3DownloadDocument(ctx context.Context, key string) ([]byte, error) {
	client := GetS3Client()
	if client == nil {
		return nil, errors.New("s3 client unavailable")
	}
	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(config.S3_DOCS_BUCKET),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, err
	}
	defer result.Body.Close()
	return io.ReadAll(result.Body)
}
