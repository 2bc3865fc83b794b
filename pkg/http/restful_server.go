package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
)

type RestfulServer struct {
	Server           *gin.Engine
	Store            *store.Store
	RateLimiterStore *store.RateLimiterStore

	startTime time.Time
}

func (rs *RestfulServer) GetLimiter(key string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(key)
	}
}

// CheckClientLimiter rate-limits per caller address; the read API has no
// per-device auth to key on.
func (rs *RestfulServer) CheckClientLimiter(c *gin.Context) bool {
	limiter := rs.GetLimiter(c.ClientIP())
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) Setup() {
	rs.startTime = time.Now()

	rs.Server.GET("/health", rs.HealthCheck)

	devices := rs.Server.Group("/devices")
	{
		devices.GET("", rs.ListDevices)
		devices.GET("/:device_id", rs.GetDevice)
		devices.GET("/:device_id/readings", rs.GetReadings)
		devices.GET("/:device_id/readings/latest", rs.GetLatestReading)
	}

	alerts := rs.Server.Group("/alerts")
	{
		alerts.GET("", rs.GetAlerts)
		alerts.POST("/:alert_id/resolve", rs.ResolveAlert)
	}

	rs.Server.GET("/stats", rs.GetStats)

	common.GetLoggerWith(common.LoggerNameRestfulServer).
		Info("Routes registered", zap.Int("routes", len(rs.Server.Routes())))
}
