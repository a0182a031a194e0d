package handler

import (
	"net/http"
	"time"

	"riceguard/internal/app/capability"
	"riceguard/internal/app/ds"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/health
func (h *Handler) ApiHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
}

// GET /api/v1/status
func (h *Handler) ApiStatus(ctx *gin.Context) {
	jsonResponse(ctx, gin.H{
		"network":   h.Monitor.Status(),
		"lastProbe": h.Monitor.LastProbe(),
	}, 1, gin.H{})
}

// PUT /api/v1/status {"online": bool}
func (h *Handler) ApiReportConnectivity(ctx *gin.Context) {
	var req ds.ConnectivityReport
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	h.Monitor.Set(*req.Online)
	jsonResponse(ctx, gin.H{"network": h.Monitor.Status()}, 1, gin.H{})
}

// GET /api/v1/capabilities
func (h *Handler) ApiCapabilities(ctx *gin.Context) {
	st := h.Monitor.Status()
	jsonResponse(ctx, capability.Resolve(st.IsOnline), 1, gin.H{"isOnline": st.IsOnline})
}
