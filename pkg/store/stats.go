package store

import (
	"plugwisepi.xyz/plugwise-collector/pkg/models"
)

func (s *Store) summary() (*models.Summary, error) {
	out := &models.Summary{}

	if err := s.Db.Conn.Model(&models.Device{}).Count(&out.TotalDevices).Error; err != nil {
		return nil, err
	}
	if err := s.Db.Conn.Model(&models.PowerReading{}).Count(&out.TotalPowerReadings).Error; err != nil {
		return nil, err
	}
	if err := s.Db.Conn.Model(&models.MeterReading{}).Count(&out.TotalMeterReadings).Error; err != nil {
		return nil, err
	}
	if err := s.Db.Conn.Model(&models.Alert{}).
		Where("resolved = ?", false).
		Count(&out.UnresolvedAlerts).Error; err != nil {
		return nil, err
	}

	if out.TotalPowerReadings > 0 {
		var latest models.PowerReading
		if err := s.Db.Conn.Order("timestamp desc").First(&latest).Error; err != nil {
			return nil, err
		}
		out.LastCollection = &latest.Timestamp
	}

	return out, nil
}

type IStatsImpl struct {
	store *Store
}

func (is *IStatsImpl) Summary() (*models.Summary, error) {
	return is.store.summary()
}

func (s *Store) GetIStats() IStats {
	return &IStatsImpl{store: s}
}
