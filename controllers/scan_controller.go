package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/middleware"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/qr"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/services"
)

// ScanController handles the agent scan workflow.
type ScanController struct {
	scanService services.ScanService
}

// NewScanController creates a new ScanController.
func NewScanController(svc services.ScanService) *ScanController {
	return &ScanController{scanService: svc}
}

// ResolveScan handles POST /api/agent/scan/resolve
func (sc *ScanController) ResolveScan(ctx *gin.Context) {
	var req models.ResolveScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	shipment, svcErr := sc.scanService.ResolveScan(ctx.Request.Context(), req.Data)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"shipment": shipment})
}

// SubmitScan handles POST /api/agent/scans
func (sc *ScanController) SubmitScan(ctx *gin.Context) {
	var req models.SubmitScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	agentID := ctx.GetString(middleware.ContextUserID)
	result, svcErr := sc.scanService.SubmitScan(ctx.Request.Context(), &req, agentID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// ShipmentLabel handles GET /api/agent/shipments/:tracking_id/label
func (sc *ScanController) ShipmentLabel(ctx *gin.Context) {
	trackingID := ctx.Param("tracking_id")
	if trackingID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tracking ID is required"})
		return
	}

	// Resolve first so labels are only issued for real shipments.
	payload, err := qr.Encode(trackingID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build label"})
		return
	}
	if _, svcErr := sc.scanService.ResolveScan(ctx.Request.Context(), string(payload)); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	png, err := qr.LabelPNG(trackingID, 256)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render label"})
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}
