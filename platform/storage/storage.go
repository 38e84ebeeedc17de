package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/utils"
)

type Service struct {
	Client       *minio.Client
	Config       *minio.Options
	Bucket       string
	StorageType  string
	KeyGenerator *utils.ExportKeyGenerator
}

func InitStorageService(cfg *config.Config) (*Service, error) {
	var minioClient *minio.Client
	var err error

	// local minio vs s3
	switch cfg.StorageType {
	case "minio":
		minioClient, err = createMinIOClient(cfg)
	case "s3":
		minioClient, err = createS3Client(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}

	ss := &Service{
		Client:       minioClient,
		Config:       &minio.Options{Region: cfg.BucketRegion},
		Bucket:       cfg.BucketName,
		StorageType:  cfg.StorageType,
		KeyGenerator: utils.NewExportKeyGenerator("exports"),
	}
	if err := ss.EnsureBucketExists(); err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}
	logging.Logger.Info("Storage service initialized",
		"type", cfg.StorageType,
		"bucket", cfg.BucketName,
		"region", cfg.BucketRegion,
	)

	return ss, nil
}

func createMinIOClient(cfg *config.Config) (*minio.Client, error) {
	return minio.New(cfg.BucketEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
		Secure: cfg.UseSSL,
	})
}

func createS3Client(cfg *config.Config) (*minio.Client, error) {
	return minio.New("s3.amazonaws.com", &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.BucketRegion,
	})
}

func (ss *Service) EnsureBucketExists() error {
	ctx := context.Background()
	exists, err := ss.Client.BucketExists(ctx, ss.Bucket)
	if err != nil {
		logging.Logger.Error("fail EnsureBucketExists", "error", err)
		return err
	}
	if exists {
		logging.Logger.Info("Bucket already exists")
		return nil
	}
	err = ss.Client.MakeBucket(ctx, ss.Bucket, minio.MakeBucketOptions{
		Region: ss.Config.Region,
	})
	if err != nil {
		if ss.StorageType == "s3" {
			logging.Logger.Warn("Could not create S3 bucket (might exist or no permission)",
				"bucket", ss.Bucket, "error", err)
			return nil
		}
		logging.Logger.Error("fail EnsureBucketExists", "error", err)
		return err
	}
	logging.Logger.Info("Bucket created successfully")
	return nil
}

// UploadExport stores a rendered diagram and returns its object key.
func (ss *Service) UploadExport(ctx context.Context, sessionID, format, contentType string, data []byte) (string, error) {
	fileKey := ss.KeyGenerator.GenerateExportKey(sessionID, format)

	_, err := ss.Client.PutObject(ctx, ss.Bucket, fileKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logging.Logger.Error("fail UploadExport", "error", err, "key", fileKey)
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	logging.Logger.Info("Export uploaded", "key", fileKey, "bytes", len(data))
	return fileKey, nil
}

func (ss *Service) GeneratePresignedGetDownload(fileKey string, expiration time.Time) (string, error) {
	duration := time.Until(expiration)
	if duration <= 0 {
		logging.Logger.Error("fail GeneratePresignedGetDownload, expiration error", "expiration", expiration)
		return "", fmt.Errorf("expiration error")
	}
	presignedURL, err := ss.Client.PresignedGetObject(
		context.Background(),
		ss.Bucket,
		fileKey,
		duration,
		nil,
	)
	if err != nil {
		logging.Logger.Error("fail GeneratePresignedGetDownload", "error", err)
		return "", err
	}
	return presignedURL.String(), nil
}
