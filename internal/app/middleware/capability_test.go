package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"riceguard/internal/app/capability"
	"riceguard/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fixedStatus ds.NetworkStatus

func (f fixedStatus) Status() ds.NetworkStatus { return ds.NetworkStatus(f) }

func newRouter(src StatusSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NetworkStatus(src))
	r.POST("/reports", RequireCapability(src, capability.ReportDiseases), func(c *gin.Context) {
		st, ok := GetNetworkStatus(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "online": st.IsOnline})
	})
	r.POST("/scan", RequireCapability(src, capability.ScanImages), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireCapabilityOffline(t *testing.T) {
	r := newRouter(fixedStatus{IsOffline: true, WasOffline: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), capability.ReportDiseases)
	assert.Equal(t, "offline", w.Header().Get("X-Network-Status"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/scan", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireCapabilityOnline(t *testing.T) {
	r := newRouter(fixedStatus{IsOnline: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"online":true}`, w.Body.String())
	assert.Equal(t, "online", w.Header().Get("X-Network-Status"))
}
