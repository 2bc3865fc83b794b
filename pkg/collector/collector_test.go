package collector

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/config"
	"plugwisepi.xyz/plugwise-collector/pkg/db"
	"plugwisepi.xyz/plugwise-collector/pkg/models"
	"plugwisepi.xyz/plugwise-collector/pkg/output"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
	"plugwisepi.xyz/plugwise-collector/pkg/store/mocks"
	_ "plugwisepi.xyz/plugwise-collector/pkg/testing"
)

const fakeAppliancesXML = `<appliances>
  <appliance id="app-1">
    <name>Washing Machine</name>
    <services><electricity_point_meter id="meter-1"/></services>
  </appliance>
</appliances>`

const fakeModulesXML = `<modules>
  <module id="mod-1">
    <services>
      <electricity_point_meter id="meter-1">
        <measurement log_date="2026-08-30T10:00:00+02:00" directionality="consumed">253.20</measurement>
      </electricity_point_meter>
    </services>
  </module>
</modules>`

const fakeDomainObjectsXML = `<domain_objects>
  <location id="loc-1">
    <logs>
      <cumulative_log>
        <type>electricity_consumed</type>
        <period>
          <measurement log_date="2026-08-30T00:00:00+02:00" tariff="nl_peak">1234.5</measurement>
          <measurement log_date="2026-08-30T00:00:00+02:00" tariff="nl_offpeak">2345.6</measurement>
        </period>
      </cumulative_log>
      <cumulative_log>
        <type>gas_consumed</type>
        <period>
          <measurement log_date="2026-08-30T00:00:00+02:00">789.123</measurement>
        </period>
      </cumulative_log>
    </logs>
  </location>
</domain_objects>`

// newFakeDevice serves canned Stretch and Smile payloads.
func newFakeDevice(t *testing.T) (string, int) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/core/appliances":
			w.Write([]byte(fakeAppliancesXML))
		case "/core/modules":
			w.Write([]byte(fakeModulesXML))
		case "/core/domain_objects":
			w.Write([]byte(fakeDomainObjectsXML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func testConfig(devices map[string]config.DeviceConfig, dir string) *config.Config {
	return &config.Config{
		Devices: devices,
		Collection: config.CollectionConfig{
			Interval:      60,
			Timeout:       2,
			RetryAttempts: 1,
		},
		Output: config.OutputConfig{Directory: dir},
		Alerts: config.AlertsConfig{HighPowerWatts: 5000},
	}
}

func newTestCollector(t *testing.T, cfg *config.Config, st *store.Store, opts Options) *Collector {
	t.Helper()
	power, err := output.NewPowerWriter(cfg.Output.Directory)
	require.NoError(t, err)
	meters, err := output.NewMeterWriter(cfg.Output.Directory)
	require.NoError(t, err)
	return New(cfg, power, meters, st, opts)
}

func readAllRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCollectPower(t *testing.T) {
	common.SetTestLoggerNop()

	host, port := newFakeDevice(t)
	dir := t.TempDir()
	cfg := testConfig(map[string]config.DeviceConfig{
		"stretch": {IP: host, Port: port, Username: "stretch", Type: "stretch", Enabled: true},
	}, dir)

	col := newTestCollector(t, cfg, nil, Options{})
	at := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)
	col.now = func() time.Time { return at }

	rows, err := col.CollectPower(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	// all rows for the day land in exactly one date-named file
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "power_usage_20260830.csv", entries[0].Name())

	records := readAllRecords(t, filepath.Join(dir, entries[0].Name()))
	require.Len(t, records, 2)
	assert.Equal(t, "stretch", records[1][1])
	assert.Equal(t, "Washing Machine", records[1][2])
	assert.Equal(t, "253.2", records[1][3])

	// the appliance mapping is cached, a second pass appends to the same file
	rows, err = col.CollectPower(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
	assert.Len(t, readAllRecords(t, filepath.Join(dir, entries[0].Name())), 3)
}

func TestCollectPower_UnreachableDevice(t *testing.T) {
	common.SetTestLoggerNop()

	dir := t.TempDir()
	cfg := testConfig(map[string]config.DeviceConfig{
		"stretch": {IP: "127.0.0.1", Port: 1, Username: "stretch", Type: "stretch", Enabled: true},
	}, dir)

	col := newTestCollector(t, cfg, nil, Options{})

	// zero rows and no error, never a crash
	rows, err := col.CollectPower(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, rows)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCollectPower_UnreachableDeviceRaisesAlert(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIAlert := mocks.NewMockIAlert(ctrl)
	dbInstance := db.GetInstance(db.UseMemorySqliteDialector())
	st := (&store.Store{Db: *dbInstance}).WithServices(store.ServiceOpts{Alert: mockIAlert})

	dir := t.TempDir()
	cfg := testConfig(map[string]config.DeviceConfig{
		"stretch": {IP: "127.0.0.1", Port: 1, Username: "stretch", Type: "stretch", Enabled: true},
	}, dir)

	mockIAlert.
		EXPECT().
		RaiseAlert(gomock.Eq("stretch"), gomock.Eq(models.AlertTypeOffline), gomock.Eq(models.SeverityError), gomock.Any()).
		Times(1)

	col := newTestCollector(t, cfg, st, Options{})
	rows, err := col.CollectPower(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
}

func TestCollectPower_StoresReadings(t *testing.T) {
	common.SetTestLoggerNop()

	host, port := newFakeDevice(t)
	dir := t.TempDir()

	deviceName := "stretch-" + uuid.NewString()
	cfg := testConfig(map[string]config.DeviceConfig{
		deviceName: {IP: host, Port: port, Username: "stretch", Type: "stretch", Enabled: true},
	}, dir)

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector())
	st := &store.Store{Db: *dbInstance, HighPowerWatts: cfg.Alerts.HighPowerWatts}
	st.WithServices(store.ServiceOpts{
		Device:  st.GetIDevice(),
		Reading: st.GetIReading(),
		Alert:   st.GetIAlert(),
		Stats:   st.GetIStats(),
	})

	col := newTestCollector(t, cfg, st, Options{})
	require.NoError(t, col.RegisterDevices())

	device, err := st.Device.GetDevice(deviceName)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceTypeStretch, device.Type)

	_, err = col.CollectPower(context.Background())
	require.NoError(t, err)

	readings, err := st.Reading.GetPowerReadings(deviceName, models.ReadingQuery{})
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 253.2, readings[0].PowerWatts)
	assert.Equal(t, "mod-1", readings[0].ModuleID)
}

func TestCollectMeters(t *testing.T) {
	common.SetTestLoggerNop()

	host, port := newFakeDevice(t)
	dir := t.TempDir()
	cfg := testConfig(map[string]config.DeviceConfig{
		"smile": {IP: host, Port: port, Username: "smile", Type: "smile", Enabled: true},
	}, dir)

	col := newTestCollector(t, cfg, nil, Options{MetersOnly: true})
	at := time.Date(2026, 8, 30, 6, 0, 0, 0, time.Local)
	col.now = func() time.Time { return at }

	start := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	require.NoError(t, col.CollectMeters(context.Background(), start, end))

	path := filepath.Join(dir, "daily_meters_20260829_20260830.csv")
	records := readAllRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-08-30", records[1][0])
	assert.Equal(t, "789.123", records[1][2])
	assert.Equal(t, "3580.1", records[1][7]) // total_consumed_kwh

	// a second run in the same session appends instead of duplicating files
	require.NoError(t, col.CollectMeters(context.Background(), start, end))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, readAllRecords(t, path), 3)
}

func TestRunOnce_Options(t *testing.T) {
	common.SetTestLoggerNop()

	host, port := newFakeDevice(t)

	devices := map[string]config.DeviceConfig{
		"stretch": {IP: host, Port: port, Username: "stretch", Type: "stretch", Enabled: true},
		"smile":   {IP: host, Port: port, Username: "smile", Type: "smile", Enabled: true},
	}

	{
		dir := t.TempDir()
		col := newTestCollector(t, testConfig(devices, dir), nil, Options{NoMeters: true})
		require.NoError(t, col.RunOnce(context.Background()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Name(), "power_usage_")
	}

	{
		dir := t.TempDir()
		col := newTestCollector(t, testConfig(devices, dir), nil, Options{MetersOnly: true})
		require.NoError(t, col.RunOnce(context.Background()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Name(), "daily_meters_")
	}

	{
		dir := t.TempDir()
		col := newTestCollector(t, testConfig(devices, dir), nil, Options{})
		require.NoError(t, col.RunOnce(context.Background()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	}
}

func TestRunOnce_ChecksStaleData(t *testing.T) {
	common.SetTestLoggerNop()

	host, port := newFakeDevice(t)
	dir := t.TempDir()

	deviceName := "stretch-" + uuid.NewString()
	cfg := testConfig(map[string]config.DeviceConfig{
		deviceName: {IP: host, Port: port, Username: "stretch", Type: "stretch", Enabled: true},
	}, dir)
	cfg.Alerts.OfflineAfter = 900

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIAlert.EXPECT().CheckAndStoreAlerts(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockIAlert.
		EXPECT().
		CheckStaleData(gomock.Eq(deviceName), gomock.Eq(15*time.Minute)).
		Return(nil).
		Times(1)

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector())
	st := &store.Store{Db: *dbInstance}
	st.WithServices(store.ServiceOpts{
		Device:  st.GetIDevice(),
		Reading: st.GetIReading(),
		Alert:   mockIAlert,
	})

	col := newTestCollector(t, cfg, st, Options{NoMeters: true})
	require.NoError(t, col.RegisterDevices())
	require.NoError(t, col.RunOnce(context.Background()))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	common.SetTestLoggerNop()

	// no enabled devices, so cycles are no-ops
	cfg := testConfig(map[string]config.DeviceConfig{}, t.TempDir())
	col := newTestCollector(t, cfg, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- col.Run(ctx, 50*time.Millisecond)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
