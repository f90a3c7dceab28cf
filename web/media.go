package web

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Media serves uploaded post images
func (s *Site) Media(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("filepath"), "/")
	if path == "" || strings.Contains(path, "..") {
		s.NotFound(c)
		return
	}
	s.Storage.Serve(path, c.Request, c.Writer)
}
