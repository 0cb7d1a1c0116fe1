package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Configuration {
	return Configuration{
		DbPath:                DefaultDbPath,
		WaitTime:              10 * time.Second,
		TempRollingWindowSize: 1,
		Sensor: SensorConfig{
			ID:   SensorId,
			Type: SensorTypeThermal,
			Path: DefaultThermalZonePath,
		},
		Fan: FanConfig{
			ID:        FanId,
			Type:      FanTypeGpio,
			Gpio:      DefaultPwmGpio,
			Frequency: DefaultPwmFrequency,
		},
		Curve: CurveConfig{
			ID:          CurveId,
			MinTemp:     DefaultMinTemp,
			MinCoolTemp: DefaultMinCoolTemp,
			MaxTemp:     DefaultMaxTemp,
			FanLow:      DefaultFanLow,
			FanHigh:     DefaultFanHigh,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	// GIVEN
	config := validConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidate_UnsupportedSensorType(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensor.Type = "i2c"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sensor type")
}

func TestValidate_SensorPathMissing(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensor.Path = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sensor_path")
}

func TestValidate_CmdSensorWithoutExec(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Sensor.Type = SensorTypeCmd
	config.Sensor.Exec = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sensor_exec")
}

func TestValidate_UnsupportedFanType(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.Type = "i2c"

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported fan type")
}

func TestValidate_GpioPinOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.Gpio = 54

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pwm_gpio")
}

func TestValidate_PwmFrequencyTooLow(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.Frequency = 10

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pwm_freq")
}

func TestValidate_PwmFrequencyTooHigh(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.Frequency = 20000000

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pwm_freq")
}

func TestValidate_FileFanWithoutPath(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Fan.Type = FanTypeFile
	config.Fan.Path = ""

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fan_path")
}

func TestValidate_MinCoolTempAboveMinTemp(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curve.MinCoolTemp = 60
	config.Curve.MinTemp = 55

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "min_cool_temp")
}

func TestValidate_MinCoolTempEqualToMinTempIsAllowed(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curve.MinCoolTemp = 55
	config.Curve.MinTemp = 55

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidate_MaxTempNotAboveMinTemp(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curve.MaxTemp = 55
	config.Curve.MinTemp = 55

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_temp")
}

func TestValidate_DutyCycleBoundsOutOfRange(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curve.FanHigh = 120

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duty cycle bounds")
}

func TestValidate_FanLowAboveFanHigh(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.Curve.FanLow = 90
	config.Curve.FanHigh = 60

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fan_low")
}

func TestValidate_WaitTimeMustBePositive(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.WaitTime = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "wait_time")
}

func TestValidate_TempWindowMustBeAtLeastOne(t *testing.T) {
	// GIVEN
	config := validConfig()
	config.TempRollingWindowSize = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "temp_window")
}
