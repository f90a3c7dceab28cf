package storage

import (
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignViewURLFor = time.Hour

type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // empty for AWS itself
	Key      string
	Secret   string
}

type S3Storage struct {
	bucket   string
	s3Client *s3.S3
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Key != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.Key, cfg.Secret, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		bucket:   cfg.Bucket,
		s3Client: s3.New(sess),
	}, nil
}

func (s *S3Storage) Save(path string, reader io.Reader, mimeType string) (int64, error) {
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.bucket,
		Key:         aws.String(cleanPath(path)),
		ContentType: &mimeType,
		Body:        counter,
	})
	return counter.n, err
}

// Serve redirects to a short-lived presigned URL
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(cleanPath(path)),
	})
	url, err := req.Presign(presignViewURLFor)
	if err != nil {
		log.Printf("S3 presign error for %s: %v", path, err)
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(cleanPath(path)),
	})
	return err
}

// GetFreeSpace is unlimited as far as we are concerned
func (s *S3Storage) GetFreeSpace() uint64 {
	return math.MaxUint64
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
