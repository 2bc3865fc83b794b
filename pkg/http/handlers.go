package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"

	"plugwisepi.xyz/plugwise-collector/pkg/models"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(rs.startTime).String(),
	})
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	devices, err := rs.Store.Device.ListDevices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, devices)
}

func (rs *RestfulServer) GetDevice(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	deviceID := c.Param("device_id")

	device, err := rs.Store.Device.GetDevice(deviceID)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, device)
}

type ReadingsRequest struct {
	Limit int       `json:"limit"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

var readingsRequestSchema = z.Struct(z.Shape{
	"Limit": z.Int().GTE(0),
	"Start": z.Time(),
	"End":   z.Time(),
})

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	deviceID := c.Param("device_id")

	if _, err := rs.Store.Device.GetDevice(deviceID); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// the query values are bound by hand; zhttp only feeds request bodies
	// to the schema and these requests have none
	var req ReadingsRequest
	var err error
	if raw := c.Query("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}
	if raw := c.Query("start"); raw != "" {
		if req.Start, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be an RFC3339 timestamp"})
			return
		}
	}
	if raw := c.Query("end"); raw != "" {
		if req.End, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be an RFC3339 timestamp"})
			return
		}
	}
	if errs := readingsRequestSchema.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs})
		return
	}

	q := models.ReadingQuery{Limit: req.Limit}
	if !req.Start.IsZero() {
		q.Start = &req.Start
	}
	if !req.End.IsZero() {
		q.End = &req.End
	}

	readings, err := rs.Store.Reading.GetPowerReadings(deviceID, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) GetLatestReading(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	deviceID := c.Param("device_id")

	if _, err := rs.Store.Device.GetDevice(deviceID); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	reading, err := rs.Store.Reading.GetLatestPowerReading(deviceID)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no readings found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, reading)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	q := models.AlertQuery{DeviceID: c.Query("device_id")}
	if raw := c.Query("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resolved must be true or false"})
			return
		}
		q.Resolved = &resolved
	}

	alerts, err := rs.Store.Alert.GetAlerts(q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) ResolveAlert(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	alertID, err := strconv.ParseUint(c.Param("alert_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "alert id must be an integer"})
		return
	}

	if err := rs.Store.Alert.ResolveAlert(uint(alertID)); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "alert resolved"})
}

func (rs *RestfulServer) GetStats(c *gin.Context) {
	if !rs.CheckClientLimiter(c) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	summary, err := rs.Store.Stats.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
