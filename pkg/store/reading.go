package store

import (
	"fmt"

	"go.uber.org/zap"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/models"
)

func (s *Store) addPowerReadings(deviceID string, readings []models.PowerReading) error {
	if len(readings) == 0 {
		return nil
	}

	logger := common.GetLoggerWith(
		common.LoggerNameStore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPower),
	)

	for i := range readings {
		readings[i].DeviceID = deviceID
	}

	if err := s.Db.Conn.Create(&readings).Error; err != nil {
		return err
	}

	logger.Info("Stored power readings",
		zap.String("device", deviceID),
		zap.Int("count", len(readings)))

	if s.Alert == nil {
		return fmt.Errorf("alert service not available")
	}

	s.Alert.CheckAndStoreAlerts(deviceID, readings)
	return nil
}

func (s *Store) getPowerReadings(deviceID string, q models.ReadingQuery) ([]models.PowerReading, error) {
	conn := s.Db.Conn.Where("device_id = ?", deviceID)
	if q.Start != nil {
		conn = conn.Where("timestamp >= ?", *q.Start)
	}
	if q.End != nil {
		conn = conn.Where("timestamp <= ?", *q.End)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	var readings []models.PowerReading
	err := conn.Order("timestamp desc").Limit(limit).Find(&readings).Error
	return readings, err
}

func (s *Store) getLatestPowerReading(deviceID string) (*models.PowerReading, error) {
	var reading models.PowerReading
	err := s.Db.Conn.
		Where("device_id = ?", deviceID).
		Order("timestamp desc").
		First(&reading).Error
	return &reading, err
}

func (s *Store) addMeterReading(deviceID string, reading *models.MeterReading) error {
	logger := common.GetLoggerWith(
		common.LoggerNameStore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMeter),
	)

	reading.DeviceID = deviceID
	if err := s.Db.Conn.Create(reading).Error; err != nil {
		return err
	}

	logger.Info("Stored meter reading", zap.String("device", deviceID))
	return nil
}

type IReadingImpl struct {
	store *Store
}

func (ir *IReadingImpl) AddPowerReadings(deviceID string, readings []models.PowerReading) error {
	return ir.store.addPowerReadings(deviceID, readings)
}

func (ir *IReadingImpl) GetPowerReadings(deviceID string, q models.ReadingQuery) ([]models.PowerReading, error) {
	return ir.store.getPowerReadings(deviceID, q)
}

func (ir *IReadingImpl) GetLatestPowerReading(deviceID string) (*models.PowerReading, error) {
	return ir.store.getLatestPowerReading(deviceID)
}

func (ir *IReadingImpl) AddMeterReading(deviceID string, reading *models.MeterReading) error {
	return ir.store.addMeterReading(deviceID, reading)
}

func (s *Store) GetIReading() IReading {
	return &IReadingImpl{store: s}
}
