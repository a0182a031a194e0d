package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"riceguard/internal/app/ds"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/vendors?region=&specialty=&verified=&lat=&lon=
func (h *Handler) ApiListVendors(ctx *gin.Context) {
	region := ctx.Query("region")
	specialty := strings.ToLower(ctx.Query("specialty"))
	verified := ctx.Query("verified")

	resp := make([]ds.Vendor, 0, len(h.Content.Vendors))
	for _, v := range h.Content.Vendors {
		if region != "" && !strings.EqualFold(v.Region, region) {
			continue
		}
		if verified == "true" && !v.Verified || verified == "false" && v.Verified {
			continue
		}
		if specialty != "" && !hasSpecialty(v, specialty) {
			continue
		}
		resp = append(resp, v)
	}

	meta := gin.H{"region": region, "specialty": specialty, "verified": verified}
	if loc, ok := readCoordinates(ctx); ok {
		meta["location"] = loc
	}
	jsonResponse(ctx, resp, int64(len(resp)), meta)
}

// GET /api/v1/vendors/:id
func (h *Handler) ApiGetVendor(ctx *gin.Context) {
	id := ctx.Param("id")
	for _, v := range h.Content.Vendors {
		if v.ID == id {
			jsonResponse(ctx, v, 1, gin.H{"id": id})
			return
		}
	}
	h.errorHandler(ctx, http.StatusNotFound, errors.New("vendor not found"))
}

func hasSpecialty(v ds.Vendor, needle string) bool {
	for _, s := range v.Specialties {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(v.Services), needle)
}

// readCoordinates reads lat/lon as given. Out-of-range values are ignored.
func readCoordinates(ctx *gin.Context) (ds.Coordinates, bool) {
	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(ctx.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return ds.Coordinates{}, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ds.Coordinates{}, false
	}
	return ds.Coordinates{Latitude: lat, Longitude: lon}, true
}
