// Package backup pushes point-in-time snapshots of the store to an
// S3-compatible bucket. It replaces the original admin panel's
// commit-and-push button with an off-box copy that needs no repository.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

// Uploader writes snapshots to an object storage bucket
type Uploader struct {
	client *minio.Client
	bucket string
	log    *log.Logger
}

// NewUploader creates an uploader from the backup configuration
func NewUploader(cfg *config.Config) (*Uploader, error) {
	client, err := minio.New(cfg.Backup.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Backup.AccessKey, cfg.Backup.SecretKey, ""),
		Secure: cfg.Backup.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &Uploader{
		client: client,
		bucket: cfg.Backup.Bucket,
		log:    logger.Backup(),
	}, nil
}

// Upload serializes the snapshot and stores it as a timestamped object.
// Returns the object name.
func (u *Uploader) Upload(ctx context.Context, snapshot *storage.Snapshot) (string, error) {
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := fmt.Sprintf("prestigio-%s-%s.json",
		time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:8])

	_, err = u.client.PutObject(ctx, u.bucket, name, bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	u.log.Info("Uploaded snapshot", "bucket", u.bucket, "object", name,
		"people", len(snapshot.People), "events", len(snapshot.Events))
	return name, nil
}
