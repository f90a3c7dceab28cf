package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets the Cache-Control header. Pages depend on who is logged
// in so they are not cached by default; paths under one of the Public
// prefixes (media, static pages) get a shared max-age instead.
type CacheRouter struct {
	CacheTime  int // defaults to CacheNoCache = 0
	Public     []string
	PublicTime int // seconds
}

func (cr *CacheRouter) cacheTime(path string) (int, bool) {
	for _, prefix := range cr.Public {
		if strings.HasPrefix(path, prefix) {
			return cr.PublicTime, true
		}
	}
	return cr.CacheTime, false
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cacheTime, public := cr.cacheTime(c.Request.URL.Path)
		switch {
		case cacheTime == CacheCustom:
		case cacheTime == CacheNoCache:
			c.Header("cache-control", "no-cache")
		case public:
			c.Header("cache-control", "public, max-age="+strconv.Itoa(cacheTime))
		default:
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cacheTime))
		}
		c.Next()
	}
}
