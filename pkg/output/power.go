package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
)

var powerHeader = []string{
	"timestamp", "device", "appliance", "power_watts",
	"measurement_timestamp", "module_id", "meter_id",
}

// PowerRow is one appliance power measurement destined for CSV.
type PowerRow struct {
	Timestamp  time.Time
	Device     string
	Appliance  string
	PowerWatts float64
	MeasuredAt string
	ModuleID   string
	MeterID    string
}

// PowerWriter appends power rows to one CSV file per local calendar day.
// Rotation falls out of the date-keyed filename: the first append after
// midnight lands in a fresh file.
type PowerWriter struct {
	mu  sync.Mutex
	dir string
}

func NewPowerWriter(dir string) (*PowerWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &PowerWriter{dir: dir}, nil
}

// FileFor returns the path of the day file covering at.
func (w *PowerWriter) FileFor(at time.Time) string {
	return filepath.Join(w.dir, fmt.Sprintf("power_usage_%s.csv", at.Format("20060102")))
}

// Append writes the rows to at's day file, creating it with a header row
// when absent. Rows are buffered and flushed as a whole so a partial row
// never reaches disk.
func (w *PowerWriter) Append(at time.Time, rows []PowerRow) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := w.FileFor(at)
	records := common.Mapper(rows, func(r PowerRow) []string {
		return []string{
			r.Timestamp.Format(time.RFC3339),
			r.Device,
			r.Appliance,
			formatFloat(r.PowerWatts),
			r.MeasuredAt,
			r.ModuleID,
			r.MeterID,
		}
	})

	if err := appendRecords(path, powerHeader, records); err != nil {
		return "", err
	}

	common.GetLoggerWith(common.LoggerNameOutput,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPower)).
		Info("Appended power rows", zap.Int("rows", len(rows)), zap.String("file", path))

	return path, nil
}

// appendRecords opens-or-creates a CSV file and appends full records.
// The header goes in only when the file is created empty.
func appendRecords(path string, header []string, records [][]string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Sync()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
