package handler

import (
	"errors"
	"net/http"

	"riceguard/internal/app/ds"
	"riceguard/internal/app/localfirst"

	"github.com/gin-gonic/gin"
)

func (h *Handler) diseaseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, localfirst.ErrNotFound):
		h.errorHandler(ctx, http.StatusNotFound, err)
	case errors.Is(err, localfirst.ErrDuplicateID):
		h.errorHandler(ctx, http.StatusConflict, err)
	case errors.Is(err, localfirst.ErrInvalidSeverity):
		h.errorHandler(ctx, http.StatusBadRequest, err)
	default:
		h.errorHandler(ctx, http.StatusInternalServerError, err)
	}
}

// GET /api/v1/diseases?query=
func (h *Handler) ApiListDiseases(ctx *gin.Context) {
	query := ctx.Query("query")
	list := h.Diseases.List(query)
	jsonResponse(ctx, list, int64(len(list)), gin.H{"query": query})
}

// GET /api/v1/diseases/:id
func (h *Handler) ApiGetDisease(ctx *gin.Context) {
	d, err := h.Diseases.Get(ctx.Param("id"))
	if err != nil {
		h.diseaseError(ctx, err)
		return
	}
	jsonResponse(ctx, d, 1, gin.H{"id": d.ID})
}

// POST /api/v1/diseases
func (h *Handler) ApiCreateDisease(ctx *gin.Context) {
	var req ds.Disease
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	d, outcome, err := h.Diseases.Add(ctx.Request.Context(), req)
	if err != nil {
		h.diseaseError(ctx, err)
		return
	}
	jsonResponse(ctx, d, 1, gin.H{"outcome": outcome})
}

// PUT /api/v1/diseases/:id
func (h *Handler) ApiUpdateDisease(ctx *gin.Context) {
	var req ds.Disease
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}
	d, outcome, err := h.Diseases.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		h.diseaseError(ctx, err)
		return
	}
	jsonResponse(ctx, d, 1, gin.H{"outcome": outcome})
}

// DELETE /api/v1/diseases/:id
func (h *Handler) ApiDeleteDisease(ctx *gin.Context) {
	id := ctx.Param("id")
	outcome, err := h.Diseases.Delete(ctx.Request.Context(), id)
	if err != nil {
		h.diseaseError(ctx, err)
		return
	}
	jsonResponse(ctx, gin.H{"deleted": id}, 1, gin.H{"outcome": outcome})
}
