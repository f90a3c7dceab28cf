package storage

import (
	"io"
	"log"
	"net/http"
	"path"
	"strings"
	"yatube/config"

	"github.com/google/uuid"
)

// StorageAPI is implemented by every media backend
type StorageAPI interface {
	Save(path string, reader io.Reader, mimeType string) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetFreeSpace() uint64
}

const (
	StorageLocationPosts = "posts"
)

// New returns S3 storage when S3_BUCKET is configured, disk storage otherwise
func New() (StorageAPI, error) {
	if config.S3_BUCKET != "" {
		log.Printf("Media storage: S3 bucket %s", config.S3_BUCKET)
		return NewS3Storage(S3Config{
			Bucket:   config.S3_BUCKET,
			Region:   config.S3_REGION,
			Endpoint: config.S3_ENDPOINT,
			Key:      config.S3_KEY,
			Secret:   config.S3_SECRET,
		})
	}
	log.Printf("Media storage: directory %s", config.MEDIA_DIR)
	return NewDiskStorage(config.MEDIA_DIR)
}

// NewImagePath returns a fresh, unique location for a post image
func NewImagePath() string {
	return StorageLocationPosts + "/" + uuid.NewString() + ".jpg"
}

// cleanPath makes sure a requested path stays inside the storage root
func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
