package store

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"plugwisepi.xyz/plugwise-collector/pkg/db"
	"plugwisepi.xyz/plugwise-collector/pkg/store/mocks"
)

func GetMockStoreWithMemorySqliteDialector(t *testing.T, useMockDevice, useMockReading, useMockAlert, useMockStats bool) (
	*gomock.Controller,
	*Store,
	*mocks.MockIDevice,
	*mocks.MockIReading,
	*mocks.MockIAlert,
	*mocks.MockIStats,
) {
	ctrl := gomock.NewController(t)

	mockIDevice := mocks.NewMockIDevice(ctrl)
	mockIReading := mocks.NewMockIReading(ctrl)
	mockIAlert := mocks.NewMockIAlert(ctrl)
	mockIStats := mocks.NewMockIStats(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	storeInstance := &Store{Db: *dbInstance, HighPowerWatts: 5000}

	deviceService := storeInstance.GetIDevice()
	if useMockDevice {
		deviceService = mockIDevice
	}

	readingService := storeInstance.GetIReading()
	if useMockReading {
		readingService = mockIReading
	}

	alertService := storeInstance.GetIAlert()
	if useMockAlert {
		alertService = mockIAlert
	}

	statsService := storeInstance.GetIStats()
	if useMockStats {
		statsService = mockIStats
	}

	storeInstance.WithServices(ServiceOpts{
		Device:  deviceService,
		Reading: readingService,
		Alert:   alertService,
		Stats:   statsService,
	})

	return ctrl, storeInstance, mockIDevice, mockIReading, mockIAlert, mockIStats
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
