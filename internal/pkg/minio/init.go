package minio

import (
	"WikiStars/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 头像、人物肖像与活动素材统一存放的桶
	MainBucket string
)

// Init 初始化 MinIO 客户端，桶不存在时自动创建
func Init() error {
	cfg := config.Cfg.MinIO

	var endpoint string
	var useSSL bool
	if cfg.InternalEndpoint != "" {
		endpoint = cfg.InternalEndpoint
		useSSL = cfg.InternalUseSSL
	} else {
		endpoint = cfg.ExternalEndpoint
		useSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MainBucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.MainBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.MainBucket, err)
		}
		log.Info("MinIO bucket created", "bucket", cfg.MainBucket)
	}

	Client = client
	MainBucket = cfg.MainBucket
	return nil
}
