package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/config"
	"plugwisepi.xyz/plugwise-collector/pkg/models"
	"plugwisepi.xyz/plugwise-collector/pkg/output"
	"plugwisepi.xyz/plugwise-collector/pkg/plugwise"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
)

type Options struct {
	// NoMeters skips the cumulative meter collection each cycle.
	NoMeters bool
	// MetersOnly skips the per-appliance power collection each cycle.
	MetersOnly bool
}

// Collector drives the poll-parse-persist cycle: fetch XML from each
// enabled device, extract rows, append them to CSV and optionally to the
// datastore. Devices are polled sequentially; a failing device never
// aborts the cycle for the others.
type Collector struct {
	cfg    *config.Config
	power  *output.PowerWriter
	meters *output.MeterWriter
	// st is optional; without it the collector is CSV-only.
	st   *store.Store
	opts Options

	clients  map[string]*plugwise.Client
	mappings map[string]plugwise.ApplianceMap

	// now is swapped out by tests.
	now func() time.Time
}

func New(cfg *config.Config, power *output.PowerWriter, meters *output.MeterWriter, st *store.Store, opts Options) *Collector {
	timeout := time.Duration(cfg.Collection.Timeout) * time.Second
	clients := map[string]*plugwise.Client{}
	for name, d := range cfg.EnabledDevices("") {
		clients[name] = plugwise.NewClient(name, d, timeout, cfg.Collection.RetryAttempts)
	}
	return &Collector{
		cfg:      cfg,
		power:    power,
		meters:   meters,
		st:       st,
		opts:     opts,
		clients:  clients,
		mappings: map[string]plugwise.ApplianceMap{},
		now:      time.Now,
	}
}

// RegisterDevices mirrors the configured devices into the datastore so the
// API can list them. No-op without a store.
func (c *Collector) RegisterDevices() error {
	if c.st == nil {
		return nil
	}
	for name, d := range c.cfg.EnabledDevices("") {
		device := &models.Device{
			ID:       name,
			Name:     name,
			Host:     d.IP,
			Port:     d.Port,
			Username: d.Username,
			Password: d.Password,
			Type:     models.DeviceType(d.Type),
			Enabled:  d.Enabled,
		}
		if err := c.st.Device.UpsertDevice(device); err != nil {
			return fmt.Errorf("register device %s: %w", name, err)
		}
	}
	return nil
}

// CollectPower runs one power collection pass over the enabled Stretch
// devices and returns the number of rows written. An unreachable device
// yields zero rows for it, an offline alert when a store is attached, and
// no error.
func (c *Collector) CollectPower(ctx context.Context) (int, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameCollector,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPower),
	)

	at := c.now()
	total := 0

	for name := range c.cfg.EnabledDevices(string(models.DeviceTypeStretch)) {
		client := c.clients[name]

		mapping, ok := c.mappings[name]
		if !ok {
			m, err := client.Appliances(ctx)
			if err != nil {
				c.deviceFailed(name, err)
				continue
			}
			logger.Info("Built appliance mapping",
				zap.String("device", name), zap.Int("meters", len(m)))
			c.mappings[name] = m
			mapping = m
		}

		samples, err := client.PowerSamples(ctx, mapping)
		if err != nil {
			c.deviceFailed(name, err)
			continue
		}

		rows := common.Mapper(samples, func(s plugwise.PowerSample) output.PowerRow {
			return output.PowerRow{
				Timestamp:  at,
				Device:     name,
				Appliance:  s.Appliance,
				PowerWatts: s.Watts,
				MeasuredAt: s.LogDate,
				ModuleID:   s.ModuleID,
				MeterID:    s.MeterID,
			}
		})

		if _, err := c.power.Append(at, rows); err != nil {
			logger.Error("CSV append failed", zap.String("device", name), zap.Error(err))
			continue
		}

		if c.st != nil {
			readings := common.Mapper(samples, func(s plugwise.PowerSample) models.PowerReading {
				return models.PowerReading{
					Timestamp:  at,
					Appliance:  s.Appliance,
					PowerWatts: s.Watts,
					MeasuredAt: s.LogDate,
					ModuleID:   s.ModuleID,
					MeterID:    s.MeterID,
				}
			})
			if err := c.st.Reading.AddPowerReadings(name, readings); err != nil {
				logger.Error("Store append failed", zap.String("device", name), zap.Error(err))
			}
		}

		totalWatts := common.Reducer(samples, func(acc float64, s plugwise.PowerSample) float64 {
			return acc + s.Watts
		}, 0.0)
		logger.Info("Collected power readings",
			zap.String("device", name),
			zap.Int("appliances", len(samples)),
			zap.Float64("total_watts", totalWatts))

		total += len(rows)
	}

	return total, nil
}

// CollectMeters runs one cumulative meter pass over the enabled Smile
// devices, appending one wide row to the session file for the date range.
func (c *Collector) CollectMeters(ctx context.Context, start, end time.Time) error {
	logger := common.GetLoggerWith(
		common.LoggerNameCollector,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMeter),
	)

	at := c.now()

	for name := range c.cfg.EnabledDevices(string(models.DeviceTypeSmile)) {
		client := c.clients[name]

		totals, err := client.MeterTotals(ctx)
		if err != nil {
			c.deviceFailed(name, err)
			continue
		}

		row := output.MeterRow{
			Date:               at.Format("2006-01-02"),
			Timestamp:          at,
			GasM3:              totals.GasM3,
			ConsumedPeakKWh:    totals.ConsumedPeakKWh,
			ConsumedOffpeakKWh: totals.ConsumedOffpeakKWh,
			ProducedPeakKWh:    totals.ProducedPeakKWh,
			ProducedOffpeakKWh: totals.ProducedOffpeakKWh,
			TotalConsumedKWh:   totals.TotalConsumedKWh(),
			TotalProducedKWh:   totals.TotalProducedKWh(),
			NetConsumedKWh:     totals.NetConsumedKWh(),
		}

		if _, err := c.meters.Append(start, end, row); err != nil {
			logger.Error("CSV append failed", zap.String("device", name), zap.Error(err))
			continue
		}

		if c.st != nil {
			reading := &models.MeterReading{
				Timestamp:          at,
				ConsumedPeakKWh:    totals.ConsumedPeakKWh,
				ConsumedOffpeakKWh: totals.ConsumedOffpeakKWh,
				ProducedPeakKWh:    totals.ProducedPeakKWh,
				ProducedOffpeakKWh: totals.ProducedOffpeakKWh,
				TotalConsumedKWh:   totals.TotalConsumedKWh(),
				TotalProducedKWh:   totals.TotalProducedKWh(),
				NetConsumedKWh:     totals.NetConsumedKWh(),
				GasM3:              totals.GasM3,
			}
			if err := c.st.Reading.AddMeterReading(name, reading); err != nil {
				logger.Error("Store append failed", zap.String("device", name), zap.Error(err))
			}
		}

		logger.Info("Collected meter reading",
			zap.String("device", name),
			zap.Float64("net_consumed_kwh", row.NetConsumedKWh),
			zap.Float64("gas_m3", row.GasM3))
	}

	return nil
}

// RunOnce performs a single collection cycle according to the options.
func (c *Collector) RunOnce(ctx context.Context) error {
	if !c.opts.MetersOnly {
		if _, err := c.CollectPower(ctx); err != nil {
			return err
		}
		c.checkStaleData()
	}
	if !c.opts.NoMeters {
		day := c.now()
		if err := c.CollectMeters(ctx, day, day); err != nil {
			return err
		}
	}
	return nil
}

// Run performs an immediate cycle and then repeats on the interval until
// the context is cancelled. The in-flight cycle always finishes before
// Run returns, so shutdown never truncates a row.
func (c *Collector) Run(ctx context.Context, interval time.Duration) error {
	logger := common.GetLoggerWith(common.LoggerNameCollector)
	logger.Info("Starting continuous collection", zap.Duration("interval", interval))

	if err := c.RunOnce(ctx); err != nil {
		logger.Error("Collection cycle failed", zap.Error(err))
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			if err := c.RunOnce(ctx); err != nil {
				logger.Error("Collection cycle failed", zap.Error(err))
			}
			timer.Reset(interval)
		case <-ctx.Done():
			logger.Info("Collection stopped")
			return nil
		}
	}
}

// checkStaleData flags power devices whose newest stored reading is older
// than the configured window. Needs a store; CSV-only runs skip it.
func (c *Collector) checkStaleData() {
	if c.st == nil || c.cfg.Alerts.OfflineAfter <= 0 {
		return
	}
	olderThan := time.Duration(c.cfg.Alerts.OfflineAfter) * time.Second
	for name := range c.cfg.EnabledDevices(string(models.DeviceTypeStretch)) {
		if err := c.st.Alert.CheckStaleData(name, olderThan); err != nil {
			common.GetLoggerWith(common.LoggerNameCollector).
				Error("Stale data check failed", zap.String("device", name), zap.Error(err))
		}
	}
}

func (c *Collector) deviceFailed(name string, err error) {
	common.GetLoggerWith(common.LoggerNameCollector).
		Warn("Device unreachable, skipping for this cycle",
			zap.String("device", name), zap.Error(err))

	if c.st == nil {
		return
	}
	msg := fmt.Sprintf("Device unreachable: %v", err)
	if aerr := c.st.Alert.RaiseAlert(name, models.AlertTypeOffline, models.SeverityError, msg); aerr != nil {
		common.GetLoggerWith(common.LoggerNameCollector).
			Error("Failed to store offline alert", zap.String("device", name), zap.Error(aerr))
	}
}
