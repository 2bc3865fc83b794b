package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"plugwisepi.xyz/plugwise-collector/pkg/collector"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/config"
	"plugwisepi.xyz/plugwise-collector/pkg/db"
	"plugwisepi.xyz/plugwise-collector/pkg/output"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
)

var (
	configPath = flag.String("config", "", "configuration file path (.json, .yml or .yaml)")
	outputDir  = flag.String("output", "", "output directory (overrides config)")
	startDate  = flag.String("start-date", "", "session start date (YYYY-MM-DD, default today)")
	endDate    = flag.String("end-date", "", "session end date (YYYY-MM-DD, default today)")
)

// parseDate accepts YYYY-MM-DD in local time; empty means today.
func parseDate(raw string, flagName string) time.Time {
	if raw == "" {
		return time.Now()
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		log.Fatalf("Invalid %s %q, use YYYY-MM-DD", flagName, raw)
	}
	return t
}

func main() {
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if *outputDir != "" {
		cfg.Output.Directory = *outputDir
	}

	start := parseDate(*startDate, "start date")
	end := parseDate(*endDate, "end date")
	if end.Before(start) {
		log.Fatal("end date is before start date")
	}

	powerWriter, err := output.NewPowerWriter(cfg.Output.Directory)
	if err != nil {
		log.Fatal("Failed to prepare output directory: ", err)
	}
	meterWriter, err := output.NewMeterWriter(cfg.Output.Directory)
	if err != nil {
		log.Fatal("Failed to prepare output directory: ", err)
	}

	st := openStore(cfg)

	col := collector.New(cfg, powerWriter, meterWriter, st, collector.Options{MetersOnly: true})
	if err := col.RegisterDevices(); err != nil {
		log.Fatal("Failed to register devices: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := col.CollectMeters(ctx, start, end); err != nil {
		log.Fatal("Meter collection failed: ", err)
	}
}

func openStore(cfg *config.Config) *store.Store {
	var dbInstance *db.DB
	switch dbType := os.Getenv(common.EnvKeyPWDBType); dbType {
	case "":
		return nil
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown PW_DB_TYPE: " + dbType)
	}

	st := &store.Store{
		Db:             *dbInstance,
		HighPowerWatts: cfg.Alerts.HighPowerWatts,
	}
	st.WithServices(store.ServiceOpts{
		Device:  st.GetIDevice(),
		Reading: st.GetIReading(),
		Alert:   st.GetIAlert(),
		Stats:   st.GetIStats(),
	})
	return st
}
