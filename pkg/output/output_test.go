package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
)

func readAllRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestPowerWriterFileFor(t *testing.T) {
	w, err := NewPowerWriter(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2026, 8, 30, 15, 4, 5, 0, time.Local)
	assert.Equal(t, "power_usage_20260830.csv", filepath.Base(w.FileFor(at)))
}

func TestPowerWriterAppend(t *testing.T) {
	common.SetTestLoggerNop()

	w, err := NewPowerWriter(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2026, 8, 30, 15, 4, 5, 0, time.Local)
	rows := []PowerRow{
		{
			Timestamp:  at,
			Device:     "stretch",
			Appliance:  "Washing Machine",
			PowerWatts: 253.2,
			MeasuredAt: "2026-08-30T15:04:00+02:00",
			ModuleID:   "mod-1",
			MeterID:    "meter-1",
		},
		{
			Timestamp:  at,
			Device:     "stretch",
			Appliance:  "Fridge",
			PowerWatts: 80,
			MeasuredAt: "2026-08-30T15:04:00+02:00",
			ModuleID:   "mod-2",
			MeterID:    "meter-2",
		},
	}

	path, err := w.Append(at, rows)
	require.NoError(t, err)

	records := readAllRecords(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"timestamp", "device", "appliance", "power_watts",
		"measurement_timestamp", "module_id", "meter_id",
	}, records[0])
	assert.Equal(t, "Washing Machine", records[1][2])
	assert.Equal(t, "253.2", records[1][3])
	assert.Equal(t, "80", records[2][3])

	// a second append on the same day reuses the file without a second header
	path2, err := w.Append(at.Add(time.Minute), rows[:1])
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	records = readAllRecords(t, path)
	assert.Len(t, records, 4)

	// the day after midnight gets its own file
	path3, err := w.Append(at.AddDate(0, 0, 1), rows[:1])
	require.NoError(t, err)
	assert.NotEqual(t, path, path3)
	assert.Equal(t, "power_usage_20260831.csv", filepath.Base(path3))
	assert.Len(t, readAllRecords(t, path3), 2)
}

func TestPowerWriterAppend_NoRows(t *testing.T) {
	common.SetTestLoggerNop()

	w, err := NewPowerWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.Append(time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", path)
}

func TestMeterWriterAppend(t *testing.T) {
	common.SetTestLoggerNop()

	w, err := NewMeterWriter(t.TempDir())
	require.NoError(t, err)

	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	row := MeterRow{
		Date:               "2026-08-30",
		Timestamp:          time.Date(2026, 8, 30, 6, 0, 0, 0, time.Local),
		GasM3:              789.123,
		ConsumedPeakKWh:    1234.5,
		ConsumedOffpeakKWh: 2345.6,
		ProducedPeakKWh:    100.5,
		ProducedOffpeakKWh: 50.25,
		TotalConsumedKWh:   3580.1,
		TotalProducedKWh:   150.75,
		NetConsumedKWh:     3429.35,
	}

	path, err := w.Append(start, end, row)
	require.NoError(t, err)
	assert.Equal(t, "daily_meters_20260829_20260830.csv", filepath.Base(path))

	// same session appends to the same file rather than creating duplicates
	path2, err := w.Append(start, end, row)
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	records := readAllRecords(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, "date", records[0][0])
	assert.Equal(t, "2026-08-30", records[1][0])
	assert.Equal(t, "789.123", records[1][2])
	assert.Equal(t, "3429.35", records[1][9])
	assert.Equal(t, records[1], records[2])
}

func TestWritersCreateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewPowerWriter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
