package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"noc-portal-backend/config"
	s3client "noc-portal-backend/s3"
)

func InitS3() {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения и бакет для документов
	if err = s3client.EnsureBucket(context.Background(), minioClient); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет недоступен")
	}

	s3client.Client = minioClient
	log.Info("S3 клиент успешно инициализирован")
}
