package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/services"
)

// TrackingController handles the public tracking lookup.
type TrackingController struct {
	trackingService services.TrackingService
}

// NewTrackingController creates a new TrackingController.
func NewTrackingController(svc services.TrackingService) *TrackingController {
	return &TrackingController{trackingService: svc}
}

// Track handles GET /api/track/:tracking_id
func (tc *TrackingController) Track(ctx *gin.Context) {
	trackingID := ctx.Param("tracking_id")
	if trackingID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tracking ID is required"})
		return
	}

	view, svcErr := tc.trackingService.GetTrackingView(ctx.Request.Context(), trackingID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, view)
}
