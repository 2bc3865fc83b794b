package store

import (
	"time"

	"plugwisepi.xyz/plugwise-collector/pkg/db"
	"plugwisepi.xyz/plugwise-collector/pkg/models"
)

type IDevice interface {
	UpsertDevice(input *models.Device) error
	ListDevices() ([]models.Device, error)
	GetDevice(deviceID string) (*models.Device, error)
}

type IReading interface {
	AddPowerReadings(deviceID string, readings []models.PowerReading) error
	GetPowerReadings(deviceID string, q models.ReadingQuery) ([]models.PowerReading, error)
	GetLatestPowerReading(deviceID string) (*models.PowerReading, error)
	AddMeterReading(deviceID string, reading *models.MeterReading) error
}

type IAlert interface {
	CheckAndStoreAlerts(deviceID string, readings []models.PowerReading) error
	CheckStaleData(deviceID string, olderThan time.Duration) error
	RaiseAlert(deviceID string, typ models.AlertType, severity models.AlertSeverity, message string) error
	GetAlerts(q models.AlertQuery) ([]models.Alert, error)
	ResolveAlert(alertID uint) error
}

type IStats interface {
	Summary() (*models.Summary, error)
}

// Store is the datastore populated by the collectors and read by the API.
type Store struct {
	Db db.DB

	// HighPowerWatts is the threshold above which an appliance reading
	// raises a high_power alert. Zero disables the check.
	HighPowerWatts float64

	Device  IDevice
	Reading IReading
	Alert   IAlert
	Stats   IStats
}

type ServiceOpts struct {
	Device  IDevice
	Reading IReading
	Alert   IAlert
	Stats   IStats
}

func (s *Store) WithServices(opts ServiceOpts) *Store {
	if opts.Device != nil {
		s.Device = opts.Device
	}
	if opts.Reading != nil {
		s.Reading = opts.Reading
	}
	if opts.Alert != nil {
		s.Alert = opts.Alert
	}
	if opts.Stats != nil {
		s.Stats = opts.Stats
	}
	return s
}
