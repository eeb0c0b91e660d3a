package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/middleware"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/services"
)

// BookingController handles booking intake, quotes and the admin
// status-override path.
type BookingController struct {
	bookingService services.BookingService
}

// NewBookingController creates a new BookingController.
func NewBookingController(svc services.BookingService) *BookingController {
	return &BookingController{bookingService: svc}
}

// CreateShipment handles POST /api/shipments
func (bc *BookingController) CreateShipment(ctx *gin.Context) {
	var req models.CreateShipmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	shipment, svcErr := bc.bookingService.CreateShipment(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"shipment": shipment})
}

// CreateFlightBooking handles POST /api/flights
func (bc *BookingController) CreateFlightBooking(ctx *gin.Context) {
	var req models.CreateFlightBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	booking, svcErr := bc.bookingService.CreateFlightBooking(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// UpdateShipmentStatus handles PATCH /api/admin/shipments/:tracking_id/status
func (bc *BookingController) UpdateShipmentStatus(ctx *gin.Context) {
	trackingID := ctx.Param("tracking_id")
	if trackingID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tracking ID is required"})
		return
	}

	var req models.AdminStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	adminID := ctx.GetString(middleware.ContextUserID)
	result, svcErr := bc.bookingService.UpdateShipmentStatus(ctx.Request.Context(), trackingID, &req, adminID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Quote handles POST /api/quotes
func (bc *BookingController) Quote(ctx *gin.Context) {
	var req services.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	quote, err := services.QuoteShipping(&req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"quote": quote})
}
