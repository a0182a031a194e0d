package handler

import (
	"context"
	"mime/multipart"
	"net/http"

	"riceguard/internal/app/capability"
	"riceguard/internal/app/classifier"
	"riceguard/internal/app/config"
	"riceguard/internal/app/content"
	"riceguard/internal/app/localfirst"
	"riceguard/internal/app/middleware"
	"riceguard/internal/app/network"
	"riceguard/internal/app/translator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PhotoArchive stores report photos. A nil archive means photos are only logged.
type PhotoArchive interface {
	UploadPhoto(ctx context.Context, fileHeader *multipart.FileHeader, prefix string) (key string, publicURL string, err error)
	DeletePhoto(ctx context.Context, key string) error
}

type Handler struct {
	Config     *config.Config
	Monitor    *network.Monitor
	Classifier *classifier.Simulated
	Diseases   *localfirst.Store
	Translator *translator.Translator
	Content    *content.Documents
	Photos     PhotoArchive
}

func NewHandler(cfg *config.Config, monitor *network.Monitor, cl *classifier.Simulated, store *localfirst.Store,
	tr *translator.Translator, docs *content.Documents, photos PhotoArchive) *Handler {
	return &Handler{
		Config:     cfg,
		Monitor:    monitor,
		Classifier: cl,
		Diseases:   store,
		Translator: tr,
		Content:    docs,
		Photos:     photos,
	}
}

// RegisterHandler registers the API routes.
func (h *Handler) RegisterHandler(router *gin.Engine) {
	api := router.Group("/api/v1", middleware.NetworkStatus(h.Monitor))

	api.GET("/health", h.ApiHealth)
	api.GET("/status", h.ApiStatus)
	api.PUT("/status", h.ApiReportConnectivity)
	api.GET("/capabilities", h.ApiCapabilities)

	api.POST("/scan", middleware.RequireCapability(h.Monitor, capability.ScanImages), h.ApiScan)

	api.GET("/diseases", h.ApiListDiseases)
	api.GET("/diseases/:id", h.ApiGetDisease)
	api.POST("/diseases", h.ApiCreateDisease)
	api.PUT("/diseases/:id", h.ApiUpdateDisease)
	api.DELETE("/diseases/:id", h.ApiDeleteDisease)

	api.GET("/vendors", h.ApiListVendors)
	api.GET("/vendors/:id", h.ApiGetVendor)

	api.POST("/translate", middleware.RequireCapability(h.Monitor, capability.Translate), h.ApiTranslate)
	api.GET("/translations/recent", h.ApiRecentTranslations)
	api.DELETE("/translations/recent", h.ApiClearRecentTranslations)

	api.POST("/reports", middleware.RequireCapability(h.Monitor, capability.ReportDiseases), h.ApiSubmitReport)
	api.DELETE("/reports/:id/photo/:name", middleware.RequireCapability(h.Monitor, capability.ReportDiseases), h.ApiWithdrawReportPhoto)
}

// RegisterStatic serves the static documents the app fetches at runtime.
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.Static("/data", h.Config.DataDir)
}

// errorHandler logs err and writes the error envelope.
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}

func jsonResponse(ctx *gin.Context, data any, total int64, meta gin.H) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   data,
		"total":  total,
		"meta":   meta,
	})
}
