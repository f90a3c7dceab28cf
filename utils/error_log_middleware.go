package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 512

type errorLogWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *errorLogWriter) Write(b []byte) (int, error) {
	if w.Status() >= 400 && len(w.body) < maxLoggedBody {
		w.body = append(w.body, b[:min(len(b), maxLoggedBody-len(w.body))]...)
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs the start of every error response body together
// with the request that caused it. It doesn't work with GZIP.
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
	if status := blw.Status(); status >= 400 {
		log.Printf("[DEBUG ERROR]: %s %s, Status %d, Body: %s", c.Request.Method, c.Request.URL.Path, status, string(blw.body))
	}
}
