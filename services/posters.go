package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"Cinelog/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PosterStore uploads poster images to an S3-compatible bucket. When no
// endpoint is configured the app falls back to the poster URL field on the
// form, so the store is optional.
type PosterStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var posterStore *PosterStore

func InitPosterStore(ctx context.Context, cfg *config.Config) error {
	if cfg.MinioEndpoint == "" {
		posterStore = nil
		return nil
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create object storage client: %w", err)
	}

	store := &PosterStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimSuffix(cfg.MinioPublicURL, "/"),
	}
	if store.publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		store.publicURL = scheme + "://" + cfg.MinioEndpoint
	}

	exists, err := client.BucketExists(ctx, store.bucket)
	if err != nil {
		return fmt.Errorf("failed to check poster bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create poster bucket: %w", err)
		}
	}

	posterStore = store
	return nil
}

func PosterUploadsEnabled() bool {
	return posterStore != nil
}

// UploadPoster stores the image and returns its public URL.
func UploadPoster(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if posterStore == nil {
		return "", fmt.Errorf("poster storage is not configured")
	}

	key := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFilename(filename))
	_, err := posterStore.client.PutObject(ctx, posterStore.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload poster: %w", err)
	}

	return posterStore.publicURL + "/" + posterStore.bucket + "/" + key, nil
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "poster"
	}
	return b.String()
}
