package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
)

var meterHeader = []string{
	"date", "timestamp", "gas_m3",
	"consumed_peak_kwh", "consumed_offpeak_kwh",
	"produced_peak_kwh", "produced_offpeak_kwh",
	"total_consumed_kwh", "total_produced_kwh", "net_consumed_kwh",
}

// MeterRow is one wide row of cumulative meter counters.
type MeterRow struct {
	Date      string
	Timestamp time.Time

	GasM3              float64
	ConsumedPeakKWh    float64
	ConsumedOffpeakKWh float64
	ProducedPeakKWh    float64
	ProducedOffpeakKWh float64
	TotalConsumedKWh   float64
	TotalProducedKWh   float64
	NetConsumedKWh     float64
}

// MeterWriter appends meter rows to one CSV file per collection session,
// named by the session's start and end dates. Re-running a collection in
// the same session appends to the same file.
type MeterWriter struct {
	mu  sync.Mutex
	dir string
}

func NewMeterWriter(dir string) (*MeterWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &MeterWriter{dir: dir}, nil
}

// FileFor returns the path of the session file for the date range.
func (w *MeterWriter) FileFor(start, end time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("daily_meters_%s_%s.csv",
		start.Format("20060102"), end.Format("20060102")))
}

func (w *MeterWriter) Append(start, end time.Time, row MeterRow) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := w.FileFor(start, end)
	record := []string{
		row.Date,
		row.Timestamp.Format(time.RFC3339),
		formatFloat(row.GasM3),
		formatFloat(row.ConsumedPeakKWh),
		formatFloat(row.ConsumedOffpeakKWh),
		formatFloat(row.ProducedPeakKWh),
		formatFloat(row.ProducedOffpeakKWh),
		formatFloat(row.TotalConsumedKWh),
		formatFloat(row.TotalProducedKWh),
		formatFloat(row.NetConsumedKWh),
	}

	if err := appendRecords(path, meterHeader, [][]string{record}); err != nil {
		return "", err
	}

	common.GetLoggerWith(common.LoggerNameOutput,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryMeter)).
		Info("Appended meter row", zap.String("file", path))

	return path, nil
}
