package middleware

import (
	"net/http"
	"time"

	"riceguard/internal/app/capability"
	"riceguard/internal/app/ds"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const NetworkStatusKey = "network_status"

// StatusSource is the live connectivity state.
type StatusSource interface {
	Status() ds.NetworkStatus
}

// NetworkStatus stores the connectivity snapshot for the request in the context.
func NetworkStatus(src StatusSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := src.Status()
		c.Set(NetworkStatusKey, st)
		if st.IsOffline {
			c.Header("X-Network-Status", "offline")
		} else {
			c.Header("X-Network-Status", "online")
		}
		c.Next()
	}
}

// RequireCapability rejects the request with 503 when the named capability is unavailable.
func RequireCapability(src StatusSource, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caps := capability.Resolve(src.Status().IsOnline)
		if !capability.Allows(caps, name) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "error",
				"description": "this feature needs an internet connection; try again when you are back online",
				"capability":  name,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request through logrus.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request served")
	}
}

// GetNetworkStatus returns the snapshot stored by NetworkStatus.
func GetNetworkStatus(c *gin.Context) (ds.NetworkStatus, bool) {
	v, exists := c.Get(NetworkStatusKey)
	if !exists {
		return ds.NetworkStatus{}, false
	}
	st, ok := v.(ds.NetworkStatus)
	return st, ok
}
