package store

import (
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/models"
)

func (s *Store) upsertDevice(input *models.Device) error {
	logger := common.GetLoggerWith(
		common.LoggerNameStore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDevice),
	)

	err := s.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(input).Error

	if err == nil {
		logger.Info("Upserted device",
			zap.String("device", input.ID),
			zap.String("type", string(input.Type)))
	}

	return err
}

func (s *Store) listDevices() ([]models.Device, error) {
	var devices []models.Device
	err := s.Db.Conn.Order("id").Find(&devices).Error
	return devices, err
}

func (s *Store) getDevice(deviceID string) (*models.Device, error) {
	var device models.Device
	err := s.Db.Conn.First(&device, "id = ?", deviceID).Error
	return &device, err
}

type IDeviceImpl struct {
	store *Store
}

func (id *IDeviceImpl) UpsertDevice(input *models.Device) error {
	return id.store.upsertDevice(input)
}

func (id *IDeviceImpl) ListDevices() ([]models.Device, error) {
	return id.store.listDevices()
}

func (id *IDeviceImpl) GetDevice(deviceID string) (*models.Device, error) {
	return id.store.getDevice(deviceID)
}

func (s *Store) GetIDevice() IDevice {
	return &IDeviceImpl{store: s}
}
