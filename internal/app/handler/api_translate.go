package handler

import (
	"errors"
	"net/http"

	"riceguard/internal/app/ds"
	"riceguard/internal/app/translator"

	"github.com/gin-gonic/gin"
)

type translateRequest struct {
	Text      string       `json:"text" binding:"required"`
	Direction ds.Direction `json:"direction"`
}

// POST /api/v1/translate
func (h *Handler) ApiTranslate(ctx *gin.Context) {
	var body translateRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	if body.Direction == "" {
		body.Direction = ds.DirectionEnglishToFilipino
	}

	res, err := h.Translator.Translate(ctx.Request.Context(), body.Text, body.Direction)
	if err != nil {
		if errors.Is(err, translator.ErrEmptyText) || errors.Is(err, translator.ErrUnknownDirection) {
			h.errorHandler(ctx, http.StatusBadRequest, err)
			return
		}
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	jsonResponse(ctx, res, 1, gin.H{"direction": body.Direction})
}

// GET /api/v1/translations/recent
func (h *Handler) ApiRecentTranslations(ctx *gin.Context) {
	list, err := h.Translator.Recent(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	jsonResponse(ctx, list, int64(len(list)), gin.H{})
}

// DELETE /api/v1/translations/recent
func (h *Handler) ApiClearRecentTranslations(ctx *gin.Context) {
	if err := h.Translator.ClearRecent(ctx.Request.Context()); err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}
	jsonResponse(ctx, gin.H{"cleared": true}, 0, gin.H{})
}
