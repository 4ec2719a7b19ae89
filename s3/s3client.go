package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"

	"noc-portal-backend/config"
)

var Client *minio.Client

// EnsureBucket создаёт бакет для документов, если его ещё нет
func EnsureBucket(ctx context.Context, client *minio.Client) error {
	bucketName := config.Conf.S3.BucketName
	location := "us-east-1"
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}
