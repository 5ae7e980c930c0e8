package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const defaultBucketName = "screen-designs"

// Bucket wraps the object-storage bucket holding screen design files
type Bucket struct {
	name   string
	handle *gcs.BucketHandle
}

// NewBucket initializes the Firebase app from the service-account
// credentials and returns a handle on the screen designs bucket
func NewBucket(ctx context.Context) (*Bucket, error) {
	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is not set in the environment")
	}

	name := os.Getenv("STORAGE_BUCKET")
	if name == "" {
		name = defaultBucketName
	}

	opt := option.WithCredentialsFile(credentialsPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage client: %w", err)
	}

	handle, err := client.Bucket(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %q: %w", name, err)
	}

	return &Bucket{name: name, handle: handle}, nil
}

// Name returns the bucket name
func (b *Bucket) Name() string {
	return b.name
}

// NewObjectPath generates a collision-resistant object path for an upload,
// keeping the original file's extension
func NewObjectPath(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	suffix := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("uploads/%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// Upload writes the object and returns its public URL
func (b *Bucket) Upload(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	w := b.handle.Object(objectPath).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %q: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload of %q: %w", objectPath, err)
	}
	return b.PublicURL(objectPath), nil
}

// Delete removes one object from the bucket
func (b *Bucket) Delete(ctx context.Context, objectPath string) error {
	if err := b.handle.Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %q: %w", objectPath, err)
	}
	return nil
}

// PublicURL maps an object path to its public download URL
func (b *Bucket) PublicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.name, objectPath)
}

// ObjectPathFromURL is the inverse of PublicURL, used when deleting objects
// whose URLs were read back from the database
func (b *Bucket) ObjectPathFromURL(url string) (string, error) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", b.name)
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("URL %q does not belong to bucket %q", url, b.name)
	}
	objectPath := strings.TrimPrefix(url, prefix)
	if objectPath == "" {
		return "", fmt.Errorf("URL %q has no object path", url)
	}
	return objectPath, nil
}
