package middleware

import "github.com/gin-gonic/gin"

// CacheHeader reports whether a response body came from the metrics cache.
const CacheHeader = "X-Cache"

// SetCacheStatus marks the response as a cache hit or miss.
func SetCacheStatus(c *gin.Context, hit bool) {
	if hit {
		c.Header(CacheHeader, "HIT")
		return
	}
	c.Header(CacheHeader, "MISS")
}
