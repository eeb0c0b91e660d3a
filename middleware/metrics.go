package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
)

// MetricsMiddleware tracks HTTP request metrics in CloudWatch. Recording
// happens asynchronously so the request path never blocks on it.
func MetricsMiddleware(metricsClient *aws_pkg.MetricsClient, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsClient == nil || !metricsClient.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		path := c.FullPath()
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = metricsClient.RecordCount(ctx, aws_pkg.MetricHTTPRequests, dimensions)
			_ = metricsClient.RecordLatency(ctx, aws_pkg.MetricHTTPLatency, duration, dimensions)

			if statusCode >= 400 {
				_ = metricsClient.RecordCount(ctx, aws_pkg.MetricHTTPErrors, dimensions)
				if statusCode < 500 {
					_ = metricsClient.RecordCount(ctx, aws_pkg.MetricHTTP4xx, dimensions)
				} else {
					_ = metricsClient.RecordCount(ctx, aws_pkg.MetricHTTP5xx, dimensions)
				}
			}
		}()
	}
}

func statusCodeToRange(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// CountOnSuccess records a named business counter whenever the wrapped
// route responds with a 2xx. Used for per-operation counters like booked
// shipments and recorded scans.
func CountOnSuccess(metricsClient *aws_pkg.MetricsClient, serviceName, metric string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if metricsClient == nil || !metricsClient.IsEnabled() {
			return
		}
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsClient.RecordCount(ctx, metric, map[string]string{"Service": serviceName})
		}()
	}
}
