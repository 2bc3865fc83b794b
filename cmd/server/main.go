package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"plugwisepi.xyz/plugwise-collector/pkg/common"
	"plugwisepi.xyz/plugwise-collector/pkg/db"
	pwHttp "plugwisepi.xyz/plugwise-collector/pkg/http"
	"plugwisepi.xyz/plugwise-collector/pkg/store"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	dbType := os.Getenv(common.EnvKeyPWDBType)
	switch dbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown PW_DB_TYPE: " + dbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyPWHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyPWDefaultRate), 64); err != nil {
		log.Fatal("Invalid PW_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyPWDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid PW_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	st := &store.Store{
		Db: *dbInstance,
	}
	st.WithServices(store.ServiceOpts{
		Device:  st.GetIDevice(),
		Reading: st.GetIReading(),
		Alert:   st.GetIAlert(),
		Stats:   st.GetIStats(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":8080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &pwHttp.RestfulServer{
		Server:           gin.Default(),
		Store:            st,
		RateLimiterStore: store.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
