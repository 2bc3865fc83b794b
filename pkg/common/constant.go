package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyPWDBType string = "PW_DB_TYPE"
	EnvKeyPWDbPath string = "PW_DB_PATH"

	EnvKeyPWHttpHostPort string = "PW_HTTP_HOST_PORT"

	EnvKeyPWDefaultRate  string = "PW_DEFAULT_RATE"
	EnvKeyPWDefaultBurst string = "PW_DEFAULT_BURST"

	LoggerNameCollector     string = "collector"
	LoggerNameStore         string = "store"
	LoggerNamePlugwise      string = "plugwise_client"
	LoggerNameOutput        string = "csv_output"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldCategory  string = "category"
	LoggerCategoryPower  string = "power"
	LoggerCategoryMeter  string = "meter"
	LoggerCategoryAlert  string = "alert"
	LoggerCategoryDevice string = "device"
)
