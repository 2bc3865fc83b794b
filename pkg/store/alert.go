package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/models"
)

func (s *Store) checkAndStoreAlerts(deviceID string, readings []models.PowerReading) error {
	if s.HighPowerWatts <= 0 {
		return nil
	}

	for _, r := range readings {
		if r.PowerWatts <= s.HighPowerWatts {
			continue
		}
		msg := fmt.Sprintf("Appliance %q at %.2f W exceeded threshold %.2f W",
			r.Appliance, r.PowerWatts, s.HighPowerWatts)
		if err := s.raiseAlert(deviceID, models.AlertTypeHighPower, models.SeverityWarning, msg); err != nil {
			return err
		}
	}
	return nil
}

// checkStaleData raises a stale_data alert when the device's newest power
// reading is older than olderThan. A device with no readings at all is
// left to the offline alert.
func (s *Store) checkStaleData(deviceID string, olderThan time.Duration) error {
	latest, err := s.getLatestPowerReading(deviceID)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}

	age := time.Since(latest.Timestamp)
	if age <= olderThan {
		return nil
	}

	msg := fmt.Sprintf("No fresh data: newest reading is %s old, limit %s",
		age.Round(time.Second), olderThan)
	return s.raiseAlert(deviceID, models.AlertTypeStaleData, models.SeverityWarning, msg)
}

// raiseAlert stores an alert unless an unresolved one of the same type is
// already pending for the device, so a persisting condition does not flood
// the table on every cycle.
func (s *Store) raiseAlert(deviceID string, typ models.AlertType, severity models.AlertSeverity, message string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameStore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlert),
	)

	var pending int64
	err := s.Db.Conn.Model(&models.Alert{}).
		Where("device_id = ? AND type = ? AND resolved = ?", deviceID, typ, false).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return nil
	}

	alert := models.Alert{
		DeviceID:  deviceID,
		Timestamp: time.Now(),
		Type:      typ,
		Severity:  severity,
		Message:   message,
	}

	logger.Info("Alert found", zap.Reflect("alert", alert))

	if err := s.Db.Conn.Create(&alert).Error; err != nil {
		return err
	}

	logger.Info("Alert saved", zap.Reflect("alert", alert))
	return nil
}

func (s *Store) getAlerts(q models.AlertQuery) ([]models.Alert, error) {
	conn := s.Db.Conn.Model(&models.Alert{})
	if q.DeviceID != "" {
		conn = conn.Where("device_id = ?", q.DeviceID)
	}
	if q.Resolved != nil {
		conn = conn.Where("resolved = ?", *q.Resolved)
	}

	var alerts []models.Alert
	err := conn.Order("timestamp desc").Find(&alerts).Error
	return alerts, err
}

// resolveAlert marks an alert resolved. Resolving twice is a no-op.
func (s *Store) resolveAlert(alertID uint) error {
	var alert models.Alert
	if err := s.Db.Conn.First(&alert, alertID).Error; err != nil {
		return err
	}
	if alert.Resolved {
		return nil
	}

	now := time.Now()
	return s.Db.Conn.Model(&alert).Updates(map[string]any{
		"resolved":    true,
		"resolved_at": &now,
	}).Error
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

type IAlertImpl struct {
	store *Store
}

func (ia *IAlertImpl) CheckAndStoreAlerts(deviceID string, readings []models.PowerReading) error {
	return ia.store.checkAndStoreAlerts(deviceID, readings)
}

func (ia *IAlertImpl) CheckStaleData(deviceID string, olderThan time.Duration) error {
	return ia.store.checkStaleData(deviceID, olderThan)
}

func (ia *IAlertImpl) RaiseAlert(deviceID string, typ models.AlertType, severity models.AlertSeverity, message string) error {
	return ia.store.raiseAlert(deviceID, typ, severity, message)
}

func (ia *IAlertImpl) GetAlerts(q models.AlertQuery) ([]models.Alert, error) {
	return ia.store.getAlerts(q)
}

func (ia *IAlertImpl) ResolveAlert(alertID uint) error {
	return ia.store.resolveAlert(alertID)
}

func (s *Store) GetIAlert() IAlert {
	return &IAlertImpl{store: s}
}
