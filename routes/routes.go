package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/controllers"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/middleware"
	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
)

// Register sets up all API routes.
func Register(
	r *gin.Engine,
	scan *controllers.ScanController,
	tracking *controllers.TrackingController,
	booking *controllers.BookingController,
	metrics *aws_pkg.MetricsClient,
	serviceName string,
) {
	api := r.Group("/api")

	// Public: tracking lookup and quotes, rate-limited per IP.
	public := api.Group("")
	public.Use(middleware.RateLimitMiddleware())
	public.GET("/track/:tracking_id", middleware.CountOnSuccess(metrics, serviceName, aws_pkg.MetricTrackingQueries), tracking.Track)
	public.POST("/quotes", booking.Quote)

	// Agent: mobile scan workflow.
	agent := api.Group("/agent")
	agent.Use(middleware.AuthMiddleware(middleware.RoleAgent))
	agent.POST("/scan/resolve", scan.ResolveScan)
	agent.POST("/scans", middleware.CountOnSuccess(metrics, serviceName, aws_pkg.MetricScansRecorded), scan.SubmitScan)
	agent.GET("/shipments/:tracking_id/label", scan.ShipmentLabel)

	// Admin: booking intake and status overrides.
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(middleware.RoleAdmin))
	admin.POST("/shipments", middleware.CountOnSuccess(metrics, serviceName, aws_pkg.MetricShipmentsBooked), booking.CreateShipment)
	admin.POST("/flights", middleware.CountOnSuccess(metrics, serviceName, aws_pkg.MetricFlightsBooked), booking.CreateFlightBooking)
	admin.PATCH("/admin/shipments/:tracking_id/status", booking.UpdateShipmentStatus)
}
