package utils

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryConfig holds the account credentials.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Backup describes one uploaded copy of the store document.
type Backup struct {
	URL      string    `json:"url"`
	PublicID string    `json:"publicId"`
	Bytes    int       `json:"bytes"`
	At       time.Time `json:"at"`
}

// CloudinaryBackup uploads store documents as raw assets into the "backups"
// folder.
type CloudinaryBackup struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryBackup(cfg CloudinaryConfig) (*CloudinaryBackup, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %v", err)
	}
	return &CloudinaryBackup{cld: cld, Folder: "backups"}, nil
}

// Upload stores data under <key>-<timestamp>.
func (b *CloudinaryBackup) Upload(ctx context.Context, key string, data []byte) (Backup, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	now := time.Now().UTC()
	uploadResp, err := b.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       b.Folder,
		PublicID:     fmt.Sprintf("%s-%s", key, now.Format("20060102T150405Z")),
		ResourceType: "raw",
	})
	if err != nil {
		return Backup{}, fmt.Errorf("upload error: %v", err)
	}
	if uploadResp.Error.Message != "" {
		return Backup{}, fmt.Errorf("upload error: %s", uploadResp.Error.Message)
	}

	return Backup{URL: uploadResp.SecureURL, PublicID: uploadResp.PublicID, Bytes: len(data), At: now}, nil
}

// Delete removes an earlier backup by public ID.
func (b *CloudinaryBackup) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return fmt.Errorf("delete error: %v", err)
	}
	return nil
}
