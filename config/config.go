package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS         = ""          // e.g. "example.com,example2.com"
	MYSQL_DSN           = ""          // MySQL will be used if this is set
	SQLITE_FILE         = "yatube.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS        = "0.0.0.0:8080"
	DEBUG_MODE          = true
	SESSION_KEY         = "this is a long key" // override in production
	SESSION_MAX_AGE     = 14 * 86400           // 2 weeks
	PAGE_SIZE           = 10
	INDEX_CACHE_SECONDS = 20
	CORS_ORIGINS        = "*"
	// Media storage. Files go to MEDIA_DIR unless S3_BUCKET is configured
	MEDIA_DIR         = "media"
	MEDIA_MIN_FREE_MB = 100
	S3_BUCKET         = ""
	S3_REGION         = "us-east-1"
	S3_ENDPOINT       = "" // for S3 compatible services (MinIO, etc)
	S3_KEY            = ""
	S3_SECRET         = ""
	IMAGE_MAX_SIZE    = 1280 // longest edge, in pixels
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvInt("PAGE_SIZE", &PAGE_SIZE)
	readEnvInt("INDEX_CACHE_SECONDS", &INDEX_CACHE_SECONDS)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvInt("MEDIA_MIN_FREE_MB", &MEDIA_MIN_FREE_MB)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvInt("IMAGE_MAX_SIZE", &IMAGE_MAX_SIZE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
