package models

import "time"

type DeviceType string

const (
	DeviceTypeStretch DeviceType = "stretch"
	DeviceTypeSmile   DeviceType = "smile"
)

type AlertType string

const (
	AlertTypeOffline   AlertType = "offline"
	AlertTypeHighPower AlertType = "high_power"
	AlertTypeStaleData AlertType = "stale_data"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityError    AlertSeverity = "error"
	SeverityCritical AlertSeverity = "critical"
)

type Device struct {
	ID       string `gorm:"primaryKey"`
	Name     string
	Host     string
	Port     int
	Username string
	Password string     `json:"-"`
	Type     DeviceType `gorm:"type:varchar(20);check:type IN ('stretch','smile')"`
	Enabled  bool

	CreatedAt time.Time
	UpdatedAt time.Time

	PowerReadings []PowerReading `gorm:"foreignKey:DeviceID;references:ID" json:"-"`
	MeterReadings []MeterReading `gorm:"foreignKey:DeviceID;references:ID" json:"-"`
	Alerts        []Alert        `gorm:"foreignKey:DeviceID;references:ID" json:"-"`
}

type PowerReading struct {
	ID        uint   `gorm:"primaryKey"`
	DeviceID  string `gorm:"index"`
	Timestamp time.Time
	Appliance string
	// PowerWatts is the instantaneous consumed power reported by the
	// appliance's point meter.
	PowerWatts float64
	// MeasuredAt is the log_date reported by the device, as opposed to
	// Timestamp which is when the collector saw the value.
	MeasuredAt string
	ModuleID   string
	MeterID    string
}

// MeterReading is one wide row of cumulative Smile counters. Values are
// meter totals, not deltas.
type MeterReading struct {
	ID        uint   `gorm:"primaryKey"`
	DeviceID  string `gorm:"index"`
	Timestamp time.Time

	ConsumedPeakKWh    float64
	ConsumedOffpeakKWh float64
	ProducedPeakKWh    float64
	ProducedOffpeakKWh float64
	TotalConsumedKWh   float64
	TotalProducedKWh   float64
	NetConsumedKWh     float64
	GasM3              float64
}

type Alert struct {
	ID         uint   `gorm:"primaryKey"`
	DeviceID   string `gorm:"index"`
	Timestamp  time.Time
	Type       AlertType     `gorm:"type:varchar(20);check:type IN ('offline','high_power','stale_data')"`
	Severity   AlertSeverity `gorm:"type:varchar(20)"`
	Message    string
	Resolved   bool
	ResolvedAt *time.Time
}

// ReadingQuery narrows a power reading listing.
type ReadingQuery struct {
	Limit int
	Start *time.Time
	End   *time.Time
}

// AlertQuery narrows an alert listing.
type AlertQuery struct {
	DeviceID string
	Resolved *bool
}

// Summary is the aggregate served by the /stats endpoint.
type Summary struct {
	TotalDevices       int64      `json:"total_devices"`
	TotalPowerReadings int64      `json:"total_power_readings"`
	TotalMeterReadings int64      `json:"total_meter_readings"`
	UnresolvedAlerts   int64      `json:"unresolved_alerts"`
	LastCollection     *time.Time `json:"last_collection,omitempty"`
}
