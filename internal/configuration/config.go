package configuration

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/markusressel/pifan2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	SensorTypeThermal = "thermal"
	SensorTypeFile    = "file"
	SensorTypeCmd     = "cmd"

	FanTypeGpio = "gpio"
	FanTypeFile = "file"
	FanTypeCmd  = "cmd"
)

// there is exactly one sensor, fan and curve per daemon instance
const (
	SensorId = "cpu"
	FanId    = "fan"
	CurveId  = "curve"
)

const (
	DefaultPwmGpio         = 14
	DefaultWaitTimeSeconds = 10
	DefaultPwmFrequency    = 10000
	DefaultMinTemp         = 55.0
	DefaultMinCoolTemp     = 50.0
	DefaultMaxTemp         = 75.0
	DefaultFanLow          = 50.0
	DefaultFanHigh         = 100.0

	DefaultThermalZonePath = "/sys/devices/virtual/thermal/thermal_zone0/temp"
	DefaultTempWindowSize  = 1

	DefaultDbPath         = "/etc/pifan2go/pifan2go.db"
	DefaultStatisticsPort = 9977
	DefaultApiHost        = "127.0.0.1"
	DefaultApiPort        = 9978
)

type SensorConfig struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	Exec string `json:"exec,omitempty"`
}

type FanConfig struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Gpio      int    `json:"gpio,omitempty"`
	Frequency int    `json:"frequency,omitempty"`
	Path      string `json:"path,omitempty"`
	Exec      string `json:"exec,omitempty"`
}

type CurveConfig struct {
	ID          string  `json:"id"`
	MinTemp     float64 `json:"minTemp"`
	MinCoolTemp float64 `json:"minCoolTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	FanLow      float64 `json:"fanLow"`
	FanHigh     float64 `json:"fanHigh"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type Configuration struct {
	DbPath string `json:"dbPath"`

	WaitTime              time.Duration `json:"waitTime"`
	TempRollingWindowSize int           `json:"tempRollingWindowSize"`

	Sensor SensorConfig `json:"sensor"`
	Fan    FanConfig    `json:"fan"`
	Curve  CurveConfig  `json:"curve"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig sets up the config file search paths and ENV variable matching.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pifan2go.conf")
	// the config file is a flat "key = value" list
	viper.SetConfigType("properties")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pifan2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match
}

// DetectAndReadConfigFile reads the configuration file if there is one.
// A missing file is not an error, the compiled-in defaults apply instead.
// Returns the path of the file that was read, or "" if none was found.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) || errors.Is(err, os.ErrNotExist) {
			return ""
		}
		ui.Warning("Unable to read configuration file: %v, using defaults", err)
		return ""
	}
	return viper.ConfigFileUsed()
}

// LoadConfig populates CurrentConfig from the values read by viper.
// Each key is parsed on its own, a malformed value only resets that
// key to its default instead of failing the whole configuration.
func LoadConfig() {
	CurrentConfig = Configuration{
		DbPath:                stringValue("db_path", DefaultDbPath),
		WaitTime:              time.Duration(intValue("wait_time", DefaultWaitTimeSeconds)) * time.Second,
		TempRollingWindowSize: intValue("temp_window", DefaultTempWindowSize),
		Sensor:                loadSensorConfig(),
		Fan:                   loadFanConfig(),
		Curve:                 loadCurveConfig(),
		Statistics: StatisticsConfig{
			Enabled: boolValue("statistics_enabled", false),
			Port:    intValue("statistics_port", DefaultStatisticsPort),
		},
		Api: ApiConfig{
			Enabled: boolValue("api_enabled", false),
			Host:    stringValue("api_host", DefaultApiHost),
			Port:    intValue("api_port", DefaultApiPort),
		},
	}
}

func loadSensorConfig() SensorConfig {
	return SensorConfig{
		ID:   SensorId,
		Type: stringValue("sensor_type", SensorTypeThermal),
		Path: stringValue("sensor_path", DefaultThermalZonePath),
		Exec: stringValue("sensor_exec", ""),
	}
}

func loadFanConfig() FanConfig {
	return FanConfig{
		ID:        FanId,
		Type:      stringValue("fan_type", FanTypeGpio),
		Gpio:      intValue("pwm_gpio", DefaultPwmGpio),
		Frequency: intValue("pwm_freq", DefaultPwmFrequency),
		Path:      stringValue("fan_path", ""),
		Exec:      stringValue("fan_exec", ""),
	}
}

func loadCurveConfig() CurveConfig {
	return CurveConfig{
		ID:          CurveId,
		MinTemp:     floatValue("min_temp", DefaultMinTemp),
		MinCoolTemp: floatValue("min_cool_temp", DefaultMinCoolTemp),
		MaxTemp:     floatValue("max_temp", DefaultMaxTemp),
		FanLow:      floatValue("fan_low", DefaultFanLow),
		FanHigh:     floatValue("fan_high", DefaultFanHigh),
	}
}

func stringValue(key string, fallback string) string {
	value := strings.TrimSpace(viper.GetString(key))
	if len(value) <= 0 {
		return fallback
	}
	return value
}

func intValue(key string, fallback int) int {
	raw := strings.TrimSpace(viper.GetString(key))
	if len(raw) <= 0 {
		return fallback
	}
	value, err := cast.ToIntE(raw)
	if err != nil {
		ui.Warning("Ignoring malformed value for '%s': %s (using %d)", key, raw, fallback)
		return fallback
	}
	return value
}

func floatValue(key string, fallback float64) float64 {
	raw := strings.TrimSpace(viper.GetString(key))
	if len(raw) <= 0 {
		return fallback
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		ui.Warning("Ignoring malformed value for '%s': %s (using %v)", key, raw, fallback)
		return fallback
	}
	return value
}

func boolValue(key string, fallback bool) bool {
	raw := strings.TrimSpace(viper.GetString(key))
	if len(raw) <= 0 {
		return fallback
	}
	value, err := cast.ToBoolE(raw)
	if err != nil {
		ui.Warning("Ignoring malformed value for '%s': %s (using %v)", key, raw, fallback)
		return fallback
	}
	return value
}
