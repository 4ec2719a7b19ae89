package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"noc-portal-backend/config"
	s3client "noc-portal-backend/s3"
)

type Provider interface {
	UploadDocument(ctx context.Context, fileName string, fileReader io.Reader, fileSize int64, contentType string) (objectKey string, err error)
	GetDocument(ctx context.Context, objectKey string) ([]byte, error)
	UploadCertificate(ctx context.Context, requestID string, pdfBody []byte) (objectKey string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		s3client: s3client.Client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadDocument(ctx context.Context, fileName string, fileReader io.Reader, fileSize int64, contentType string) (string, error) {
	if i.s3client == nil {
		return "", errors.New("хранилище документов не настроено")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("docs/%s%s", uuid.NewString(), path.Ext(fileName))
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки документа в хранилище")
	}
	return objectKey, nil
}

func (i impl) GetDocument(ctx context.Context, objectKey string) ([]byte, error) {
	if i.s3client == nil {
		return nil, errors.New("хранилище документов не настроено")
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения документа из хранилища")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения документа из хранилища")
	}
	return body, nil
}

func (i impl) UploadCertificate(ctx context.Context, requestID string, pdfBody []byte) (string, error) {
	if i.s3client == nil {
		return "", errors.New("хранилище документов не настроено")
	}
	objectKey := fmt.Sprintf("certificates/%s.pdf", requestID)
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey,
		bytes.NewReader(pdfBody), int64(len(pdfBody)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения сертификата в хранилище")
	}
	return objectKey, nil
}
