package handler

import (
	"errors"
	"net/http"
	"time"

	"riceguard/internal/app/classifier"
	"riceguard/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/v1/scan (multipart field "image", "file" accepted as fallback)
func (h *Handler) ApiScan(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		file, err = ctx.FormFile("file")
		if err != nil {
			h.errorHandler(ctx, http.StatusBadRequest, errors.New("no image uploaded: send the photo in the \"image\" form field"))
			return
		}
	}

	upload := ds.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}

	results, err := h.Classifier.Classify(ctx.Request.Context(), upload)
	if err != nil {
		var vErr *classifier.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.errorHandler(ctx, http.StatusBadRequest, err)
		case ctx.Request.Context().Err() != nil:
			// client went away; nobody is listening for the result
			ctx.Abort()
		default:
			h.errorHandler(ctx, http.StatusInternalServerError, err)
		}
		return
	}

	jsonResponse(ctx, gin.H{
		"scanId":     uuid.New().String(),
		"results":    results,
		"analyzedAt": time.Now().UTC(),
	}, int64(len(results)), gin.H{"filename": upload.Filename})
}
