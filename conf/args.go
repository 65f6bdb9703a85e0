package conf

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Args Global Application Arguments
var Args Arguments

//Arguments arguments struct type
type Arguments struct {
	//FixedStartDate is the earliest business date the pipeline cares about, "2006-01-02".
	FixedStartDate string `mapstructure:"fixed_start_date"`
	DefaultRetry   int    `mapstructure:"default_retry"`
	BatchSize      int    `mapstructure:"batch_size"`
	MaxWorkers     int    `mapstructure:"max_workers"`
	//RateLimitEvery sleep after this many symbols are processed within a driver
	RateLimitEvery int `mapstructure:"rate_limit_every"`
	//RateLimitSleep seconds to sleep at each rate limit point
	RateLimitSleep    int     `mapstructure:"rate_limit_sleep"`
	LogLevel          string  `mapstructure:"log_level"`
	LogFile           string  `mapstructure:"log_file"`
	SQLFileLocation   string  `mapstructure:"sql_file_location"`
	CPUUsageThreshold float64 `mapstructure:"cpu_usage_threshold"`
	Database          struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Schema   string `mapstructure:"schema"`
		UserName string `mapstructure:"user_name"`
		Password string `mapstructure:"password"`
		PoolSize int    `mapstructure:"pool_size"`
	}
	Network struct {
		HTTPTimeout      int    `mapstructure:"http_timeout"`
		MasterProxyAddr  string `mapstructure:"master_proxy_addr"`
		DefaultUserAgent string `mapstructure:"default_user_agent"`
	}
}

//FloorDate parses FixedStartDate into a time.Time.
func (a *Arguments) FloorDate() time.Time {
	t, e := time.Parse("2006-01-02", a.FixedStartDate)
	if e != nil {
		logrus.Panicf("invalid fixed_start_date %s: %+v", a.FixedStartDate, e)
	}
	return t
}

func init() {
	setDefaults()
	viper.SetConfigName("datapipe") // name of config file (without extension)
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	err := viper.ReadInConfig()
	if err != nil {
		logrus.Warnf("config file not found, using defaults: %+v", err)
	} else if err = viper.Unmarshal(&Args); err != nil {
		logrus.Errorf("config file error: %+v", err)
		return
	}
	bindEnv()
	switch Args.LogLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	}
	checkConfig()
}

//bindEnv lets deployment environments override database credentials
//without a config file.
func bindEnv() {
	viper.BindEnv("database.host", "DB_HOST")
	viper.BindEnv("database.port", "DB_PORT")
	viper.BindEnv("database.schema", "DB_NAME")
	viper.BindEnv("database.user_name", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	if h := viper.GetString("database.host"); h != "" {
		Args.Database.Host = h
	}
	if p := viper.GetInt("database.port"); p != 0 {
		Args.Database.Port = p
	}
	if s := viper.GetString("database.schema"); s != "" {
		Args.Database.Schema = s
	}
	if u := viper.GetString("database.user_name"); u != "" {
		Args.Database.UserName = u
	}
	if p := viper.GetString("database.password"); p != "" {
		Args.Database.Password = p
	}
}

func checkConfig() {
	if _, e := time.Parse("2006-01-02", Args.FixedStartDate); e != nil {
		logrus.Panicf("fixed_start_date must be yyyy-MM-dd, but is %s", Args.FixedStartDate)
	}
	if Args.Database.PoolSize < Args.MaxWorkers+2 {
		logrus.Warnf("database.pool_size (%d) should be >= max_workers+2 (%d), adjusting",
			Args.Database.PoolSize, Args.MaxWorkers+2)
		Args.Database.PoolSize = Args.MaxWorkers + 2
	}
}

func setDefaults() {
	Args.FixedStartDate = "2024-09-24"
	Args.DefaultRetry = 3
	Args.BatchSize = 300
	Args.MaxWorkers = 4
	Args.RateLimitEvery = 10
	Args.RateLimitSleep = 1
	Args.LogLevel = "info"
	Args.LogFile = "datapipe.log"
	Args.CPUUsageThreshold = 40
	Args.Database.Host = "localhost"
	Args.Database.Port = 3306
	Args.Database.Schema = "stock_data"
	Args.Database.UserName = "root"
	Args.Database.PoolSize = 10
	Args.Network.HTTPTimeout = 30
	Args.Network.DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36"
}
