package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"chaat-factory-backend/pkg/config"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var storageClient *storage.Client

// InitGCPStorage initializes the GCP Storage client
func InitGCPStorage() error {
	if config.AppConfig.ItemImageBucket == "" || config.AppConfig.ClockPhotoBucket == "" {
		return fmt.Errorf("ITEM_IMAGE_BUCKET and CLOCK_PHOTO_BUCKET must be set")
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if config.AppConfig.GoogleApplicationCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.GoogleApplicationCredentials))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create GCP storage client: %v", err)
	}

	storageClient = client
	return nil
}

// UploadItemImage uploads a catalog item image and returns its public URL.
// A random prefix keeps same-named uploads from colliding.
func UploadItemImage(reader io.Reader, fileName string) (string, error) {
	objectName, err := randomObjectName(fileName)
	if err != nil {
		return "", err
	}

	return upload(config.AppConfig.ItemImageBucket, objectName, "image/jpeg", reader)
}

// randomObjectName prefixes a file name with 16 random bytes in hex
func randomObjectName(fileName string) (string, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate object name: %v", err)
	}
	return hex.EncodeToString(randomBytes) + "-" + fileName, nil
}

// UploadClockPhoto uploads an attendance photo keyed by kiosk, clock type
// and timestamp, and returns its public URL.
func UploadClockPhoto(reader io.Reader, kioskID int, clockType string, unixTime int64) (string, error) {
	objectName := fmt.Sprintf("%d/%s-%d.jpg", kioskID, clockType, unixTime)

	return upload(config.AppConfig.ClockPhotoBucket, objectName, "image/jpeg", reader)
}

func upload(bucketName, objectName, contentType string, reader io.Reader) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("GCP storage client not initialized")
	}

	ctx := context.Background()
	writer := storageClient.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return "", fmt.Errorf("GCS upload failed: %v", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("GCS upload finalization failed: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName), nil
}

// DeleteItemImage deletes a catalog item image by its public URL
func DeleteItemImage(imageURL string) error {
	if imageURL == "" {
		return nil
	}

	if storageClient == nil {
		return fmt.Errorf("GCP storage client not initialized")
	}

	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", config.AppConfig.ItemImageBucket)
	objectName := strings.TrimPrefix(imageURL, prefix)
	if objectName == imageURL {
		// Not one of ours
		return nil
	}

	ctx := context.Background()
	if err := storageClient.Bucket(config.AppConfig.ItemImageBucket).Object(objectName).Delete(ctx); err != nil {
		// Don't fail if the object is already gone
		return nil
	}

	return nil
}
