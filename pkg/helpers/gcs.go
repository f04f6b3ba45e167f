package helpers

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var ErrStorageNotConfigured = errors.New("gcs not configured")

// NewGCSClient uses the service account file at credsPath, or Application
// Default Credentials when it is empty.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// PublicURL is the storage.googleapis.com address of bucket/objectPath, with
// each path segment escaped.
func PublicURL(bucket, objectPath string) string {
	segs := strings.Split(strings.TrimPrefix(objectPath, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "https://storage.googleapis.com/" + bucket + "/" + strings.Join(segs, "/")
}

// GCSUploader writes objects into one bucket and returns their public URL.
type GCSUploader struct {
	Client       *storage.Client
	Bucket       string
	CacheControl string
}

func (u *GCSUploader) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if u == nil || u.Client == nil || u.Bucket == "" {
		return "", ErrStorageNotConfigured
	}
	w := u.Client.Bucket(u.Bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = u.CacheControl
	// single request upload; resumes are small
	w.ChunkSize = 0
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return PublicURL(u.Bucket, objectPath), nil
}
