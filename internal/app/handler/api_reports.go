package handler

import (
	"errors"
	"net/http"
	"time"

	"riceguard/internal/app/classifier"
	"riceguard/internal/app/ds"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// POST /api/v1/reports (JSON, or multipart with an optional "photo" file)
func (h *Handler) ApiSubmitReport(ctx *gin.Context) {
	var form ds.ReportFormData
	if err := ctx.ShouldBind(&form); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	receipt := ds.ReportReceipt{
		ID:          uuid.New().String(),
		SubmittedAt: time.Now().UTC(),
	}

	if photo, err := ctx.FormFile("photo"); err == nil {
		upload := ds.ImageUpload{Filename: photo.Filename, ContentType: photo.Header.Get("Content-Type"), Size: photo.Size}
		if err := classifier.Validate(upload); err != nil {
			h.errorHandler(ctx, http.StatusBadRequest, err)
			return
		}
		if h.Photos != nil {
			key, url, err := h.Photos.UploadPhoto(ctx.Request.Context(), photo, "reports/"+receipt.ID)
			if err != nil {
				h.errorHandler(ctx, http.StatusBadGateway, err)
				return
			}
			receipt.PhotoKey, receipt.PhotoURL = key, url
		} else {
			logrus.WithField("photo", upload.Filename).Info("no photo archive configured, photo not kept")
		}
	}

	logrus.WithFields(logrus.Fields{
		"report":   receipt.ID,
		"farmer":   form.FarmerName,
		"province": form.Province,
		"disease":  form.DiseaseID,
		"severity": form.Severity,
		"area_ha":  form.AffectedArea,
		"photo":    receipt.PhotoKey,
	}).Info("disease report sent to server")

	jsonResponse(ctx, receipt, 1, gin.H{})
}

// DELETE /api/v1/reports/:id/photo/:name removes a photo archived with a submitted report.
func (h *Handler) ApiWithdrawReportPhoto(ctx *gin.Context) {
	if h.Photos == nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("no photo archive configured"))
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("invalid report id"))
		return
	}

	name := ctx.Param("name")
	if name == "." || name == ".." {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("invalid photo name"))
		return
	}

	key := "reports/" + id.String() + "/" + name
	if err := h.Photos.DeletePhoto(ctx.Request.Context(), key); err != nil {
		h.errorHandler(ctx, http.StatusBadGateway, err)
		return
	}
	logrus.WithField("photo", key).Info("report photo withdrawn")
	jsonResponse(ctx, gin.H{"photoKey": key}, 1, gin.H{})
}
