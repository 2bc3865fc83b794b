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
	"go.uber.org/zap"
	"plugwisepi.xyz/plugwise-collector/pkg/collector"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/config"
	"plugwisepi.xyz/plugwise-collector/pkg/db"
	"plugwisepi.xyz/plugwise-collector/pkg/output"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
)

var (
	configPath = flag.String("config", "", "configuration file path (.json, .yml or .yaml)")
	interval   = flag.Int("interval", 0, "collection interval in seconds (overrides config)")
	outputDir  = flag.String("output", "", "output directory (overrides config)")
	continuous = flag.Bool("continuous", false, "run continuous collection")
	single     = flag.Bool("single", false, "run a single collection cycle (default)")
	noMeters   = flag.Bool("no-meters", false, "skip cumulative meter collection")
	metersOnly = flag.Bool("meters-only", false, "skip per-appliance power collection")
)

func main() {
	flag.Parse()

	// .env is optional for the collector; env vars only select the store.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if *interval > 0 {
		cfg.Collection.Interval = *interval
	}
	if *outputDir != "" {
		cfg.Output.Directory = *outputDir
	}
	if *noMeters && *metersOnly {
		log.Fatal("--no-meters and --meters-only are mutually exclusive")
	}

	logger := common.GetLogger()

	powerWriter, err := output.NewPowerWriter(cfg.Output.Directory)
	if err != nil {
		log.Fatal("Failed to prepare output directory: ", err)
	}
	meterWriter, err := output.NewMeterWriter(cfg.Output.Directory)
	if err != nil {
		log.Fatal("Failed to prepare output directory: ", err)
	}

	st := openStore(cfg)

	col := collector.New(cfg, powerWriter, meterWriter, st, collector.Options{
		NoMeters:   *noMeters,
		MetersOnly: *metersOnly,
	})
	if err := col.RegisterDevices(); err != nil {
		log.Fatal("Failed to register devices: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *continuous && !*single {
		intervalDur := time.Duration(cfg.Collection.Interval) * time.Second
		if err := col.Run(ctx, intervalDur); err != nil {
			log.Fatal("Collector stopped with error: ", err)
		}
		return
	}

	if err := col.RunOnce(ctx); err != nil {
		logger.Error("Collection cycle failed", zap.Error(err))
		os.Exit(1)
	}
}

// openStore attaches the sqlite datastore when PW_DB_TYPE is set; without
// it the collector writes CSV only.
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
